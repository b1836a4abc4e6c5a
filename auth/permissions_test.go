package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{"admin", PermAuditRead, true},
		{"admin", PermDispatchWrite, true},
		{"operario", PermReceiptsWrite, true},
		{"operario", PermPacksWrite, true},
		{"operario", PermDispatchWrite, false},
		{"operario", PermAuditRead, false},
		{"logistica", PermDispatchWrite, true},
		{"logistica", PermModelsWrite, false},
		{"", PermReceiptsWrite, false},
		{"visitante", PermReceiptsWrite, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.permission, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.permission))
		})
	}
}
