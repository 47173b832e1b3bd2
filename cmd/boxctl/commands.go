package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/andyle182810/boxsdk/files"
	"github.com/andyle182810/boxsdk/users"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	logLevel string
	fields   []string
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{logLevel: "", fields: nil}

	var application *app

	rootCmd := &cobra.Command{
		Use:           "boxctl",
		Short:         "Command line client for the Box API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error

			application, err = newApp(cmd.Context(), flags.logLevel)

			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if application != nil {
				application.close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override LOG_LEVEL")
	rootCmd.PersistentFlags().StringSliceVar(&flags.fields, "fields", nil, "Box fields to return")

	current := func() *app { return application }

	rootCmd.AddCommand(newWhoAmICmd(current, flags))
	rootCmd.AddCommand(newUsersCmd(current, flags))
	rootCmd.AddCommand(newFilesCmd(current, flags))

	return rootCmd
}

func newWhoAmICmd(current func() *app, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user the access token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := current().users.GetCurrentUser(cmd.Context(), flags.fields...)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), user)
		},
	}
}

func newUsersCmd(current func() *app, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect and manage enterprise users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>...",
		Short: "Get one or more users by ID",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				user, err := current().users.GetUser(cmd.Context(), args[0], flags.fields...)
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), user)
			}

			found, err := current().users.GetUsers(cmd.Context(), args...)
			if printErr := printJSON(cmd.OutOrStdout(), found); printErr != nil {
				return printErr
			}

			return err
		},
	})

	cmd.AddCommand(newUsersListCmd(current, flags))
	cmd.AddCommand(newUsersUpdateCmd(current, flags))

	return cmd
}

func newUsersListCmd(current func() *app, flags *rootFlags) *cobra.Command {
	var opts users.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users in the enterprise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Fields = flags.fields

			page, err := current().users.ListEnterpriseUsers(cmd.Context(), opts)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().StringVar(&opts.FilterTerm, "filter", "", "Only users whose name or login starts with this term")
	cmd.Flags().StringVar(&opts.UserType, "type", "", "User type: all, managed or external")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Offset of the first user")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Page size (default 100, max 1000)")

	return cmd
}

func newUsersUpdateCmd(current func() *app, flags *rootFlags) *cobra.Command {
	var req users.UpdateRequest

	var spaceAmount int64

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user's attributes (enterprise admins only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ID = args[0]

			if cmd.Flags().Changed("space-amount") {
				req.SpaceAmount = &spaceAmount
			}

			user, err := current().users.UpdateUser(cmd.Context(), req, flags.fields...)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), user)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&req.Login, "login", "", "Primary login email")
	cmd.Flags().StringVar(&req.Role, "role", "", "Enterprise role: coadmin or user")
	cmd.Flags().StringVar(&req.Status, "status", "", "Account status")
	cmd.Flags().StringVar(&req.JobTitle, "job-title", "", "Job title")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Address, "address", "", "Address")
	cmd.Flags().StringVar(&req.Language, "language", "", "Language code")
	cmd.Flags().StringVar(&req.Timezone, "timezone", "", "Timezone")
	cmd.Flags().Int64Var(&spaceAmount, "space-amount", 0, "Storage quota in bytes, -1 for unlimited")
	cmd.Flags().BoolVar(&req.RemoveFromEnterprise, "remove-from-enterprise", false,
		"Roll the user out of the enterprise")

	return cmd
}

func newFilesCmd(current func() *app, flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Inspect files",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Get file information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := current().files.GetFile(cmd.Context(), args[0], flags.fields...)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), file)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "preview-pages <id>",
		Short: "Show how many preview pages a file has",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preview, err := current().files.GetPreview(cmd.Context(), args[0], 1)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"file_id":     args[0],
				"total_pages": preview.TotalPages,
			})
		},
	})

	cmd.AddCommand(newFilesPreviewCmd(current))
	cmd.AddCommand(newFilesUploadCmd(current, flags))

	return cmd
}

func newFilesUploadCmd(current func() *app, flags *rootFlags) *cobra.Command {
	var req files.UploadRequest

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a local file into a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read upload: %w", err)
			}

			req.Content = content
			if req.Name == "" {
				req.Name = filepath.Base(args[0])
			}

			file, err := current().files.UploadFile(cmd.Context(), req, flags.fields...)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), file)
		},
	}

	cmd.Flags().StringVar(&req.ParentID, "parent", "0", "Destination folder ID (0 is the root folder)")
	cmd.Flags().StringVar(&req.Name, "name", "", "Name in Box (defaults to the local file name)")

	return cmd
}

func newFilesPreviewCmd(current func() *app) *cobra.Command {
	var (
		page int
		out  string
	)

	cmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Download one page of a file's PNG preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preview, err := current().files.GetPreview(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, preview.Content, 0o600); err != nil {
				return fmt.Errorf("failed to write preview: %w", err)
			}

			return printJSON(cmd.OutOrStdout(), map[string]any{
				"file_id":      args[0],
				"page":         preview.CurrentPage,
				"total_pages":  preview.TotalPages,
				"content_type": preview.ContentType,
				"bytes":        len(preview.Content),
				"output":       out,
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to download")
	cmd.Flags().StringVarP(&out, "out", "o", "preview.png", "Output file")

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	return nil
}
