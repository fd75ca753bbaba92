package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-core/app/domain"
)

func TestDocument_Matches(t *testing.T) {
	doc := &domain.Document{
		ID:     "l1",
		Exists: true,
		Data: map[string]any{
			"status":    "active",
			"rent":      float64(1200),
			"bedrooms":  2,
			"furnished": true,
			"agent_id":  "agent-1",
		},
	}

	tests := []struct {
		name    string
		filters []domain.Filter
		want    bool
	}{
		{
			name: "string equality",
			filters: []domain.Filter{
				{Field: "status", Op: domain.OpEqual, Value: "active"},
			},
			want: true,
		},
		{
			name: "string inequality",
			filters: []domain.Filter{
				{Field: "status", Op: domain.OpNotEqual, Value: "archived"},
			},
			want: true,
		},
		{
			name: "numeric comparison crosses concrete types",
			filters: []domain.Filter{
				{Field: "rent", Op: domain.OpLessEqual, Value: 1200},
				{Field: "bedrooms", Op: domain.OpGreaterEqual, Value: float64(2)},
			},
			want: true,
		},
		{
			name: "numeric bound excluded",
			filters: []domain.Filter{
				{Field: "rent", Op: domain.OpLess, Value: 1200},
			},
			want: false,
		},
		{
			name: "bool equality",
			filters: []domain.Filter{
				{Field: "furnished", Op: domain.OpEqual, Value: true},
			},
			want: true,
		},
		{
			name: "conjunction fails when one filter fails",
			filters: []domain.Filter{
				{Field: "status", Op: domain.OpEqual, Value: "active"},
				{Field: "agent_id", Op: domain.OpEqual, Value: "agent-2"},
			},
			want: false,
		},
		{
			name: "absent field only satisfies inequality",
			filters: []domain.Filter{
				{Field: "city", Op: domain.OpNotEqual, Value: "Osaka"},
			},
			want: true,
		},
		{
			name: "absent field fails equality",
			filters: []domain.Filter{
				{Field: "city", Op: domain.OpEqual, Value: "Osaka"},
			},
			want: false,
		},
		{
			name: "mixed incomparable types fail ordering",
			filters: []domain.Filter{
				{Field: "status", Op: domain.OpGreater, Value: 5},
			},
			want: false,
		},
		{
			name:    "no filters matches everything",
			filters: nil,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, doc.Matches(tt.filters))
		})
	}
}

func TestDocument_MatchesNonexistent(t *testing.T) {
	absent := &domain.Document{ID: "gone", Exists: false}
	assert.False(t, absent.Matches(nil))

	var nilDoc *domain.Document
	assert.False(t, nilDoc.Matches(nil))
}

func TestDocument_MatchesTime(t *testing.T) {
	now := time.Now()
	doc := &domain.Document{
		ID:     "a1",
		Exists: true,
		Data:   map[string]any{"submitted_at": now},
	}

	assert.True(t, doc.Matches([]domain.Filter{
		{Field: "submitted_at", Op: domain.OpGreater, Value: now.Add(-time.Hour)},
	}))
	assert.False(t, doc.Matches([]domain.Filter{
		{Field: "submitted_at", Op: domain.OpLess, Value: now.Add(-time.Hour)},
	}))
}

func TestDocument_String(t *testing.T) {
	doc := &domain.Document{
		ID:     "p1",
		Exists: true,
		Data:   map[string]any{"role": "agent", "count": 3},
	}

	assert.Equal(t, "agent", doc.String("role"))
	assert.Empty(t, doc.String("count"))
	assert.Empty(t, doc.String("missing"))

	var nilDoc *domain.Document
	assert.Empty(t, nilDoc.String("role"))
}

func TestValidateFilters(t *testing.T) {
	err := domain.ValidateFilters([]domain.Filter{
		{Field: "status", Op: domain.OpEqual, Value: "active"},
		{Field: "rent", Op: domain.OpLess, Value: 900},
	})
	require.NoError(t, err)

	err = domain.ValidateFilters([]domain.Filter{
		{Field: "", Op: domain.OpEqual, Value: "active"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = domain.ValidateFilters([]domain.Filter{
		{Field: "status", Op: "~=", Value: "active"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
