package utils

import (
	mrand "math/rand"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandString(t *testing.T) {
	re := regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	for _, n := range []int{1, 8, 32} {
		s := RandString(n)
		assert.Len(t, s, n)
		assert.True(t, re.MatchString(s), s)
	}
}

func TestRandStringNotSeedDerived(t *testing.T) {
	// Generated credentials must not depend on any seedable PRNG state.
	mrand.Seed(12345)
	a := RandString(12)
	mrand.Seed(12345)
	b := RandString(12)
	assert.NotEqual(t, a, b)

	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		s := RandString(12)
		assert.False(t, seen[s], s)
		seen[s] = true
	}
}

func TestCheckVersion(t *testing.T) {
	type args struct {
		ver        string
		constraint string
	}
	tests := []struct {
		name    string
		args    args
		want    bool
		wantErr bool
	}{
		{"Satisfied", args{"5.7.40", ">= 5.7.0"}, true, false},
		{"Equal", args{"5.7.0", ">= 5.7.0"}, true, false},
		{"Too old", args{"5.5.62", ">= 5.7.0"}, false, false},
		{"Newer major", args{"8.0.31", ">= 5.7.0"}, true, false},
		{"Invalid version", args{"abc", ">= 5.7.0"}, false, true},
		{"Invalid constraint", args{"5.7.0", "abc"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckVersion(tt.args.ver, tt.args.constraint)
			assert.Equal(t, tt.wantErr, err != nil, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileExist(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, FileExist(dir))
	assert.False(t, FileExist(filepath.Join(dir, "missing")))
}
