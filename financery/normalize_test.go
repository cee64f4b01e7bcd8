package financery

import (
	"testing"

	"github.com/carlmjohnson/be"
)

func TestNormalizeTransactionRecord(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{
			name: "boolean income with billId",
			input: map[string]any{
				"type":   true,
				"billId": float64(7),
				"amount": float64(20),
			},
			expected: map[string]any{
				"type":      "income",
				"billId":    float64(7),
				"accountId": float64(7),
				"amount":    float64(20),
			},
		},
		{
			name: "boolean expense",
			input: map[string]any{
				"type":   false,
				"amount": float64(5),
			},
			expected: map[string]any{
				"type":   "expense",
				"amount": float64(5),
			},
		},
		{
			name: "nil type treated as expense",
			input: map[string]any{
				"type": nil,
			},
			expected: map[string]any{
				"type": "expense",
			},
		},
		{
			name: "canonical accountId wins over billId",
			input: map[string]any{
				"type":      "expense",
				"accountId": float64(3),
				"billId":    float64(9),
			},
			expected: map[string]any{
				"type":      "expense",
				"accountId": float64(3),
				"billId":    float64(9),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.DeepEqual(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	canonical := map[string]any{
		"type":      "income",
		"accountId": float64(7),
		"amount":    float64(20),
	}

	once := Normalize(canonical)
	twice := Normalize(once)

	be.DeepEqual(t, canonical, once.(map[string]any))
	be.DeepEqual(t, once.(map[string]any), twice.(map[string]any))
}

func TestNormalizeArrayElementWise(t *testing.T) {
	input := []any{
		map[string]any{"type": true, "billId": float64(1)},
		map[string]any{"type": false, "billId": float64(2)},
		"not an object",
	}

	result, ok := Normalize(input).([]any)
	be.True(t, ok)
	be.Equal(t, len(input), len(result))

	first := result[0].(map[string]any)
	be.Equal(t, "income", first["type"].(string))
	be.Equal(t, float64(1), first["accountId"].(float64))

	second := result[1].(map[string]any)
	be.Equal(t, "expense", second["type"].(string))
	be.Equal(t, float64(2), second["accountId"].(float64))

	be.Equal(t, "not an object", result[2].(string))
}

func TestNormalizeLeavesOtherRecordsAlone(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{
			name:  "user record without type",
			input: map[string]any{"id": float64(1), "name": "Ann", "email": "ann@example.com"},
		},
		{
			name:  "scalar",
			input: float64(42),
		},
		{
			name:  "nil",
			input: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			switch expected := tt.input.(type) {
			case map[string]any:
				be.DeepEqual(t, expected, result.(map[string]any))
			default:
				be.DeepEqual(t, tt.input, result)
			}
		})
	}
}
