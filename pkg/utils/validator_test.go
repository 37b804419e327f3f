package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRUT(t *testing.T) {
	tests := []struct {
		name    string
		rut     string
		wantErr bool
	}{
		{name: "valid with dash", rut: "12345678-5", wantErr: false},
		{name: "valid without dash", rut: "123456785", wantErr: false},
		{name: "valid K verifier", rut: "20938566-K", wantErr: false},
		{name: "valid zero verifier", rut: "20938560-0", wantErr: false},
		{name: "wrong check digit", rut: "12345678-9", wantErr: true},
		{name: "non numeric body", rut: "ABC-1", wantErr: true},
		{name: "too short", rut: "5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRUT(tt.rut)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
