package store

import "errors"

var (
	// ErrKeychainNotFound indicates a requested keychain does not exist.
	ErrKeychainNotFound = errors.New("keychain not found")

	// ErrDuplicateKeychain indicates a keychain with the given name already exists.
	ErrDuplicateKeychain = errors.New("keychain already exists")

	// ErrKeyNotFound indicates a requested key-id does not exist within a keychain.
	ErrKeyNotFound = errors.New("key not found")

	// ErrDuplicateKey indicates a key with the given key-id already exists in the keychain.
	ErrDuplicateKey = errors.New("key already exists")

	// ErrSRRangeNotFound indicates a requested label-range binding does not exist.
	ErrSRRangeNotFound = errors.New("segment routing label range not found")

	// ErrDuplicateSRRange indicates a label-range binding with the given name already exists.
	ErrDuplicateSRRange = errors.New("segment routing label range already exists")

	// ErrStaticRouteNotFound indicates a requested static route does not exist.
	ErrStaticRouteNotFound = errors.New("static route not found")

	// ErrDuplicateStaticRoute indicates a static route with the same prefix/nexthop already exists.
	ErrDuplicateStaticRoute = errors.New("static route already exists")
)
