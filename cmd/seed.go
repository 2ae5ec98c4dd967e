package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"teamhub/blobstore"
	"teamhub/config"
	"teamhub/connection"
	"teamhub/docstore"
	"teamhub/services"
	"teamhub/store"
)

func seedCmd() *cobra.Command {
	var rosterFile string
	var withTasks bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the initial team accounts, documents and phase plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			roster := services.DefaultRoster
			if rosterFile != "" {
				data, err := os.ReadFile(rosterFile)
				if err != nil {
					return err
				}
				if roster, err = services.ParseRoster(data); err != nil {
					return err
				}
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fb, err := connection.FBConnection(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer fb.Close()

			svc := services.NewService(
				docstore.NewFirestoreStore(fb.Firestore),
				blobstore.NewGCSStore(fb.Bucket, fb.BucketName),
				store.NewDirectory(),
				nil,
			)
			res, err := svc.Seed(cmd.Context(), roster, withTasks)
			if err != nil {
				return err
			}
			fmt.Printf("seeded %d users, %d documents, %d tasks\n", res.Users, res.Documents, res.Tasks)
			return nil
		},
	}
	cmd.Flags().StringVar(&rosterFile, "roster", "", "YAML file listing team members (defaults to the founding team)")
	cmd.Flags().BoolVar(&withTasks, "tasks", false, "also create the phase plan")
	return cmd
}
