package httpimport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRedirectLedgerBaseFor(t *testing.T) {
	for name, tc := range map[string]struct {
		records   [][2]string
		requested string
		want      string
	}{
		"absent entry falls back to the requested path": {
			requested: "https://cdn.example.com/pkg",
			want:      "https://cdn.example.com/pkg",
		},
		"recorded entry returns the effective url": {
			records: [][2]string{
				{"https://cdn.example.com/pkg", "https://cdn.example.com/pkg/index.js"},
			},
			requested: "https://cdn.example.com/pkg",
			want:      "https://cdn.example.com/pkg/index.js",
		},
		"later record overwrites earlier one": {
			records: [][2]string{
				{"https://cdn.example.com/pkg", "https://cdn.example.com/v1/index.js"},
				{"https://cdn.example.com/pkg", "https://cdn.example.com/v2/index.js"},
			},
			requested: "https://cdn.example.com/pkg",
			want:      "https://cdn.example.com/v2/index.js",
		},
		"unredirected entry is the identity": {
			records: [][2]string{
				{"https://cdn.example.com/a.js", "https://cdn.example.com/a.js"},
			},
			requested: "https://cdn.example.com/a.js",
			want:      "https://cdn.example.com/a.js",
		},
	} {
		t.Run(name, func(t *testing.T) {
			ledger := NewRedirectLedger()
			for _, rec := range tc.records {
				ledger.Record(rec[0], rec[1])
			}
			got := ledger.BaseFor(tc.requested)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}
