package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lambda-handlers/internal/apiclient"
)

type lister func(ctx context.Context, client *apiclient.Client) (apiclient.Result, error)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "apiget",
		Short:        "Call the API Gateway endpoints in front of the S3 listing lambdas",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("url", "", "API Gateway endpoint")
	_ = root.MarkPersistentFlagRequired("url")

	root.AddCommand(newObjectsCmd(), newBucketsCmd())
	return root
}

func newObjectsCmd() *cobra.Command {
	var bucket string
	cmd := &cobra.Command{
		Use:   "objects",
		Short: "List the object keys of a bucket",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, func(ctx context.Context, client *apiclient.Client) (apiclient.Result, error) {
				return client.ListObjects(ctx, bucket)
			})
		},
	}
	cmd.Flags().StringVar(&bucket, "bucket", "", "bucket name or s3://bucket/prefix URL")
	_ = cmd.MarkFlagRequired("bucket")
	return cmd
}

func newBucketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buckets",
		Short: "List the account's buckets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, func(ctx context.Context, client *apiclient.Client) (apiclient.Result, error) {
				return client.ListBuckets(ctx)
			})
		},
	}
}

func runList(cmd *cobra.Command, list lister) error {
	endpoint, err := cmd.Flags().GetString("url")
	if err != nil {
		return err
	}
	res, err := list(cmd.Context(), apiclient.New(endpoint))
	if res.StatusCode != 0 {
		fmt.Fprintln(cmd.OutOrStdout(), res.StatusCode)
	}
	if err != nil {
		return err
	}
	printItems(cmd.OutOrStdout(), res.Items)
	return nil
}

func printItems(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}
