package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	xredis "github.com/garrettladley/wellness/internal/redis"
	"github.com/garrettladley/wellness/internal/service/user"
	"github.com/garrettladley/wellness/internal/storage"
)

const timeLayout = "2006-01-02 15:04"

func apiKeyCmd() *cobra.Command {
	var driver string

	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage API keys",
	}
	cmd.PersistentFlags().StringVar(&driver, "driver", "", "storage driver (postgres or sqlite); defaults to STORAGE_DRIVER")

	cmd.AddCommand(
		apiKeyIssueCmd(&driver),
		apiKeyListCmd(&driver),
		apiKeyRevokeCmd(&driver),
	)
	return cmd
}

func apiKeyIssueCmd(driver *string) *cobra.Command {
	var userID, name string

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue an API key for a user",
		Long:  "Issue an API key for a user. A new user id is generated when --user is omitted. The key is printed once and only its hash is stored.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == "" {
				userID = uuid.NewString()
			}
			return withUserService(cmd.Context(), *driver, func(svc user.Service, _ cacheInfo) error {
				apiKey, err := svc.IssueAPIKey(cmd.Context(), userID, name)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "user:    %s\n", userID)
				fmt.Fprintf(out, "api key: %s\n", apiKey)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id to issue the key for")
	cmd.Flags().StringVar(&name, "name", "default", "label for the key")
	return cmd
}

func apiKeyListCmd(driver *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a user's API keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserService(cmd.Context(), *driver, func(svc user.Service, _ cacheInfo) error {
				keys, err := svc.ListAPIKeys(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tCREATED\tLAST USED\tSTATUS")
				for _, k := range keys {
					lastUsed := "never"
					if k.LastUsedAt != nil {
						lastUsed = k.LastUsedAt.Local().Format(timeLayout)
					}
					status := "active"
					if k.Revoked {
						status = "revoked"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", k.ID, k.Name, k.CreatedAt.Local().Format(timeLayout), lastUsed, status)
				}
				return tw.Flush()
			})
		},
	}
}

func apiKeyRevokeCmd(driver *string) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <key-id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserService(cmd.Context(), *driver, func(svc user.Service, cache cacheInfo) error {
				if err := svc.RevokeAPIKey(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", args[0])
				if notice := cache.revokeNotice(); notice != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), notice)
				}
				return nil
			})
		},
	}
}

// cacheInfo describes the API key cache a command ran against.
type cacheInfo struct {
	shared bool
	ttl    time.Duration
}

// revokeNotice warns that servers caching keys in process cannot see an
// eviction made from here.
func (c cacheInfo) revokeNotice() string {
	if c.shared || c.ttl <= 0 {
		return ""
	}
	return fmt.Sprintf("warning: REDIS_URL is not set; running servers may accept this key for up to %s", c.ttl)
}

// withUserService opens the configured store for the duration of fn. When
// REDIS_URL is set the server's shared cache is used, so a revoke takes effect
// on running servers at once. Otherwise they keep a revoked key until their
// cache entry expires.
func withUserService(ctx context.Context, driver string, fn func(user.Service, cacheInfo) error) error {
	cfg, err := readConfig(driver)
	if err != nil {
		return err
	}

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	var cache storage.APIKeyCache
	if cfg.Redis.Enabled() {
		client, err := xredis.New(ctx, xredis.Config{URL: cfg.Redis.URL, DialTimeout: cfg.Redis.DialTimeout})
		if err != nil {
			return err
		}
		defer client.Close() //nolint:errcheck
		cache = storage.NewRedisAPIKeyCache(storage.RedisConfig{Client: client})
	} else {
		memCache := storage.NewMemoryAPIKeyCache(time.Minute)
		defer memCache.Close() //nolint:errcheck
		cache = memCache
	}

	return fn(user.NewAPIKeyService(store, cache, cfg.APIKeyCache.TTL), cacheInfo{
		shared: cfg.Redis.Enabled(),
		ttl:    cfg.APIKeyCache.TTL,
	})
}
