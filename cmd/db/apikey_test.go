package main

import (
	"strings"
	"testing"
	"time"
)

func TestRevokeNotice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cache cacheInfo
		want  string
	}{
		{name: "shared cache", cache: cacheInfo{shared: true, ttl: 5 * time.Minute}},
		{name: "caching disabled", cache: cacheInfo{}},
		{name: "in-process cache", cache: cacheInfo{ttl: 5 * time.Minute}, want: "5m0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.cache.revokeNotice()
			if tt.want == "" {
				if got != "" {
					t.Errorf("revokeNotice() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("revokeNotice() = %q, want mention of %s", got, tt.want)
			}
		})
	}
}
