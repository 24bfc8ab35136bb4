package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectItemLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"dropboard"},
			want: []string{"dropboard"},
		},
		{
			name: "item location first token",
			in:   []string{"dropboard", "0/item/2"},
			want: []string{"dropboard", "items", "show", "0/item/2"},
		},
		{
			name: "item location after value flag",
			in:   []string{"dropboard", "--dir", "./tmp-board", "1/item/0"},
			want: []string{"dropboard", "--dir", "./tmp-board", "items", "show", "1/item/0"},
		},
		{
			name: "item location after equals flag",
			in:   []string{"dropboard", "--dir=./tmp-board", "1/item/0"},
			want: []string{"dropboard", "--dir=./tmp-board", "items", "show", "1/item/0"},
		},
		{
			name: "item location after bool flag",
			in:   []string{"dropboard", "--pretty", "1/item/0"},
			want: []string{"dropboard", "--pretty", "items", "show", "1/item/0"},
		},
		{
			name: "item location after double dash",
			in:   []string{"dropboard", "--", "3/item/10"},
			want: []string{"dropboard", "--", "items", "show", "3/item/10"},
		},
		{
			name: "list location not rewritten",
			in:   []string{"dropboard", "1/list"},
			want: []string{"dropboard", "1/list"},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"dropboard", "items", "mv", "0/item/0", "1/list"},
			want: []string{"dropboard", "items", "mv", "0/item/0", "1/list"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectItemLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
