package store

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ============================================
// KEYCHAIN OPERATIONS
// ============================================

func (s *Store) GetKeychain(ctx context.Context, name string) (*Keychain, error) {
	return getByField[Keychain](s.db, ctx, "name", name, ErrKeychainNotFound, "Keys")
}

func (s *Store) GetKeychainByID(ctx context.Context, id string) (*Keychain, error) {
	return getByField[Keychain](s.db, ctx, "id", id, ErrKeychainNotFound, "Keys")
}

func (s *Store) ListKeychains(ctx context.Context) ([]*Keychain, error) {
	return listAll[Keychain](s.db, ctx, "Keys")
}

func (s *Store) CreateKeychain(ctx context.Context, kc *Keychain) (string, error) {
	kc.CreatedAt = time.Now()
	return createWithID(s.db, ctx, kc, func(k *Keychain, id string) { k.ID = id }, kc.ID, ErrDuplicateKeychain)
}

func (s *Store) DeleteKeychain(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var kc Keychain
		if err := tx.Where("name = ?", name).First(&kc).Error; err != nil {
			return convertNotFoundError(err, ErrKeychainNotFound)
		}
		if err := tx.Where("keychain_id = ?", kc.ID).Delete(&KeychainKey{}).Error; err != nil {
			return err
		}
		return tx.Delete(&kc).Error
	})
}

// ============================================
// KEYCHAIN KEY OPERATIONS
// ============================================

func (s *Store) AddKey(ctx context.Context, key *KeychainKey) (string, error) {
	key.CreatedAt = time.Now()
	return createWithID(s.db, ctx, key, func(k *KeychainKey, id string) { k.ID = id }, key.ID, ErrDuplicateKey)
}

func (s *Store) RemoveKey(ctx context.Context, keychainID string, keyID uint32) error {
	result := s.db.WithContext(ctx).
		Where("keychain_id = ? AND key_id = ?", keychainID, keyID).
		Delete(&KeychainKey{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrKeyNotFound
	}
	return nil
}

// ActiveKey returns the key within the keychain whose send lifetime covers
// at, preferring the highest key-id among eligible keys when several
// windows overlap.
func (s *Store) ActiveKey(ctx context.Context, keychainName string, at time.Time) (*KeychainKey, error) {
	kc, err := s.GetKeychain(ctx, keychainName)
	if err != nil {
		return nil, err
	}

	var best *KeychainKey
	for i := range kc.Keys {
		k := &kc.Keys[i]
		if k.SendLifetimeStart != nil && at.Before(*k.SendLifetimeStart) {
			continue
		}
		if k.SendLifetimeEnd != nil && at.After(*k.SendLifetimeEnd) {
			continue
		}
		if best == nil || k.KeyID > best.KeyID {
			best = k
		}
	}
	if best == nil {
		return nil, ErrKeyNotFound
	}
	return best, nil
}
