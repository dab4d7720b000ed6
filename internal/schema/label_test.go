package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"COTTON_COMBED", "Cotton Combed"},
		{"FLEECE", "Fleece"},
		{"KPC_2_WARNA", "KPC 2 Warna"},
		{"SABLON_DTF", "Sablon Dtf"},
		{"lengan_panjang", "Lengan Panjang"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Label(tc.in), "Label(%q)", tc.in)
	}
}

func TestLabel_IdempotentOnTitleCase(t *testing.T) {
	for _, s := range []string{"Hello", "Hello World", "Saku Tempel", "A B C"} {
		assert.Equal(t, s, Label(s))
		assert.Equal(t, Label(s), Label(Label(s)))
	}
}
