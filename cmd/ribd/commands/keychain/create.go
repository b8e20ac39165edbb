package keychain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/routeflow/ribd/internal/cli/prompt"
	"github.com/routeflow/ribd/pkg/config/store"
	"github.com/spf13/cobra"
)

var (
	createKeyID     uint32
	createAlgorithm string
	createSecret    string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a keychain with an initial key",
	Long: `Create a new keychain and seed it with a first authentication key.

The keychain is created with exactly this one key; the ribd keychain
commands offer no way to add further keys to an existing keychain. The
secret is read from --secret, or prompted for interactively if omitted.

Examples:
  ribd keychain create isis-l2 --key-id 1 --algorithm hmac-sha256
  ribd keychain create ospf-area0 --key-id 1 --algorithm md5 --secret s3cr3t`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().Uint32Var(&createKeyID, "key-id", 1, "key ID for the initial key")
	createCmd.Flags().StringVar(&createAlgorithm, "algorithm", "hmac-sha256", "key algorithm (cleartext|md5|hmac-sha1|hmac-sha256)")
	createCmd.Flags().StringVar(&createSecret, "secret", "", "key secret (prompted for if omitted)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	secret := createSecret
	if secret == "" {
		var err error
		secret, err = prompt.PasswordWithConfirmation("Key secret", "Confirm secret", 1)
		if err != nil {
			return err
		}
	}

	s, ctx, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	kc := &store.Keychain{
		ID:   uuid.NewString(),
		Name: name,
	}
	kcID, err := s.CreateKeychain(ctx, kc)
	if err != nil {
		return fmt.Errorf("failed to create keychain: %w", err)
	}

	key := &store.KeychainKey{
		ID:         uuid.NewString(),
		KeychainID: kcID,
		KeyID:      createKeyID,
		Algorithm:  createAlgorithm,
		Secret:     secret,
	}
	if _, err := s.AddKey(ctx, key); err != nil {
		return fmt.Errorf("failed to add initial key: %w", err)
	}

	fmt.Printf("Created keychain %q with key ID %d\n", name, createKeyID)
	return nil
}
