package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/routeflow/ribd/pkg/config"
	"github.com/routeflow/ribd/pkg/config/store"
	"github.com/spf13/cobra"
)

var (
	backupOutput     string
	backupConfig     string
	backupS3Bucket   string
	backupS3Key      string
	backupS3Region   string
	backupS3Endpoint string
)

var controlplaneCmd = &cobra.Command{
	Use:   "controlplane",
	Short: "Backup control-plane database to a JSON export",
	Long: `Export keychains, SR label range bindings and static routes to a
single JSON document.

The export can be written to a local file with --output, or uploaded
directly to an S3-compatible bucket with --s3-bucket/--s3-key.

Examples:
  ribd backup controlplane --output /var/backups/ribd-2026-07-31.json

  ribd backup controlplane --s3-bucket ribd-backups \
    --s3-key control-plane/2026-07-31.json --s3-region us-east-1`,
	RunE: runControlplaneBackup,
}

func init() {
	controlplaneCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "output file path (required unless --s3-bucket is set)")
	controlplaneCmd.Flags().StringVar(&backupConfig, "config", "", "path to config file")
	controlplaneCmd.Flags().StringVar(&backupS3Bucket, "s3-bucket", "", "upload the export to this S3 bucket instead of a local file")
	controlplaneCmd.Flags().StringVar(&backupS3Key, "s3-key", "", "S3 object key (required with --s3-bucket)")
	controlplaneCmd.Flags().StringVar(&backupS3Region, "s3-region", "", "AWS region (uses SDK default resolution if empty)")
	controlplaneCmd.Flags().StringVar(&backupS3Endpoint, "s3-endpoint", "", "S3 endpoint override, for S3-compatible services")
}

func runControlplaneBackup(cmd *cobra.Command, args []string) error {
	if backupOutput == "" && backupS3Bucket == "" {
		return fmt.Errorf("either --output or --s3-bucket must be set")
	}
	if backupS3Bucket != "" && backupS3Key == "" {
		return fmt.Errorf("--s3-key is required when --s3-bucket is set")
	}

	ctx := context.Background()

	cfg, err := config.MustLoad(backupConfig)
	if err != nil {
		return err
	}

	s, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open control-plane store: %w", err)
	}
	defer func() { _ = s.Close() }()

	data, err := buildBackup(ctx, s)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if backupS3Bucket != "" {
		if err := uploadToS3(ctx, payload); err != nil {
			return err
		}
		fmt.Printf("Uploaded control-plane backup to s3://%s/%s\n", backupS3Bucket, backupS3Key)
		return nil
	}

	if err := os.WriteFile(backupOutput, payload, 0600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	fmt.Printf("Wrote control-plane backup to %s (%d keychains, %d label ranges, %d static routes)\n",
		backupOutput, len(data.Keychains), len(data.SRLabelRanges), len(data.StaticRoutes))
	return nil
}

func buildBackup(ctx context.Context, s *store.Store) (*ControlPlaneBackup, error) {
	keychains, err := s.ListKeychains(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list keychains: %w", err)
	}

	ranges, err := s.ListSRLabelRanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list SR label ranges: %w", err)
	}

	routes, err := s.ListStaticRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list static routes: %w", err)
	}

	return &ControlPlaneBackup{
		Version:       backupFormatVersion,
		Timestamp:     time.Now(),
		Keychains:     keychains,
		SRLabelRanges: ranges,
		StaticRoutes:  routes,
	}, nil
}

func uploadToS3(ctx context.Context, payload []byte) error {
	var opts []func(*awsconfig.LoadOptions) error
	if backupS3Region != "" {
		opts = append(opts, awsconfig.WithRegion(backupS3Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if backupS3Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(backupS3Endpoint)
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(backupS3Bucket),
		Key:    aws.String(backupS3Key),
		Body:   bytes.NewReader(payload),
	})
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}
	return nil
}
