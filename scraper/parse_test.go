package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "10", want: 10},
		{raw: " 1,234 ", want: 1234},
		{raw: "5000+", want: 5000},
		{raw: "5,000+", want: 5000},
		{raw: "0", want: 0},
		{raw: "", wantErr: true},
		{raw: "+", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "1.2k", wantErr: true},
		{raw: "∞", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCount(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedNumber)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseContributors(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{raw: "∞", want: 15600},
		{raw: "∞+", want: 15600},
		{raw: " ∞ ", want: 15600},
		{raw: "3", want: 3},
		{raw: "5,000+", want: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseContributors(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseContributors("many")
	assert.ErrorIs(t, err, ErrMalformedNumber)
}

func TestLanguageLabel(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "Go 98.2% Shell 1.8%", want: "Go"},
		{text: "\n  Jupyter Notebook 97.1%\n  Python 2.9%", want: "Jupyter Notebook"},
		{text: "Visual Basic .NET 60% C# 40%", want: "Visual Basic .NET"},
		{text: "Objective-C 88.0%Swift 12.0%", want: "Objective-C"},
		{text: "Jupyter Notebook", want: "Jupyter Notebook"},
		{text: "Python JavaScript", want: "Python"},
		{text: "   ", want: "None"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, LanguageLabel(tt.text))
		})
	}
}
