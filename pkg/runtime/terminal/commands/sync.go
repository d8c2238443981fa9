package commands

import (
	"fmt"

	"github.com/de-tools/service-reports/pkg/runtime/terminal/export"
	"github.com/de-tools/service-reports/pkg/services/s3sync"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// syncFlagAliases maps the short long-form names onto the canonical flags.
var syncFlagAliases = map[string]string{
	"bucket":      "bucket-name",
	"destination": "destination-folder",
}

type SyncCmd struct {
	env         *Env
	bucket      string
	destination string
	pageSize    int32
}

func NewSyncCmd(env *Env) *cobra.Command {
	sc := &SyncCmd{env: env}
	cmd := &cobra.Command{
		Use:   "sync-s3",
		Short: "Download every object of the report bucket",
		RunE:  sc.run,
	}

	cmd.Flags().StringVarP(&sc.bucket, "bucket-name", "b", "", "S3 bucket holding the reports")
	cmd.Flags().StringVarP(&sc.destination, "destination-folder", "d", "", "Local directory to download into")
	cmd.Flags().Int32VarP(&sc.pageSize, "page-size", "p", 0, "Objects listed per page")
	cmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if canonical, ok := syncFlagAliases[name]; ok {
			name = canonical
		}
		return pflag.NormalizedName(name)
	})

	return cmd
}

func (sc *SyncCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := sc.env.Config

	bucket := orDefault(sc.bucket, cfg.S3.Bucket)
	if bucket == "" {
		return fmt.Errorf("a bucket is required, pass --bucket-name or set s3.bucket")
	}
	destination := orDefault(sc.destination, cfg.Paths.PDF)
	pageSize := sc.pageSize
	if pageSize <= 0 {
		pageSize = cfg.S3.PageSize
	}

	client, err := sc.env.NewS3Client(ctx, cfg.S3.Profile, cfg.S3.Region)
	if err != nil {
		return fmt.Errorf("failed to create S3 client: %w", err)
	}

	result, err := s3sync.NewSyncer(client).Sync(ctx, s3sync.Options{
		Bucket:      bucket,
		Destination: destination,
		PageSize:    pageSize,
		Concurrency: cfg.S3.Concurrency,
	})
	if err != nil {
		return err
	}

	return sc.env.Reporter.HandleSummary(export.Summary{
		Title:     "Synced " + bucket,
		Processed: int64(result.Downloaded),
		Skipped:   int64(result.Skipped),
		Output:    destination,
	})
}
