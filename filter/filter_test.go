package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamworks/streamctl/streaming"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func sampleItems() []streaming.Content {
	return []streaming.Content{
		{
			ID:          intPtr(1),
			Title:       "Morning News Live",
			Description: "daily broadcast",
			FilePath:    strPtr("/media/news.mp4"),
			Category:    strPtr("news"),
		},
		{
			ID:          intPtr(2),
			Title:       "Cooking Show",
			Description: "weekly recipes",
			Category:    strPtr("lifestyle"),
		},
		{
			Title: "Draft Episode",
		},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{
			name: "simple comparison",
			expr: `Category == "news"`,
		},
		{
			name: "helper call",
			expr: `contains(Title, "live")`,
		},
		{
			name:    "empty expression",
			expr:    "   ",
			wantErr: true,
		},
		{
			name:    "syntax error",
			expr:    `Title ==`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expr, f.String())
		})
	}
}

func TestMatch(t *testing.T) {
	items := sampleItems()

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "by category",
			expr: `Category == "news"`,
			want: []string{"Morning News Live"},
		},
		{
			name: "case-insensitive contains",
			expr: `contains(Title, "LIVE")`,
			want: []string{"Morning News Live"},
		},
		{
			name: "items with media",
			expr: `HasFile`,
			want: []string{"Morning News Live"},
		},
		{
			name: "items without media",
			expr: `!HasFile`,
			want: []string{"Cooking Show", "Draft Episode"},
		},
		{
			name: "by id",
			expr: `ID > 1`,
			want: []string{"Cooking Show"},
		},
		{
			name: "prefix helper",
			expr: `startsWith(Title, "draft")`,
			want: []string{"Draft Episode"},
		},
		{
			name: "no matches",
			expr: `Category == "sports"`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expr)
			require.NoError(t, err)

			matched, err := f.Apply(items)
			require.NoError(t, err)

			var titles []string
			for _, item := range matched {
				titles = append(titles, item.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestMatchNonBoolExpression(t *testing.T) {
	f, err := Compile(`Title`)
	require.NoError(t, err)

	_, err = f.Match(streaming.Content{Title: "x"})
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
}
