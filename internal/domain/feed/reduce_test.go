package feed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/feed-export/internal/domain/feed"
)

func TestReduceCategoryID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"sin ceros queda igual", "OB1SH2", "OB1SH2"},
		{"cero tras letra se elimina", "OB01", "OB1"},
		{"corrida de ceros completa", "OB0001", "OB1"},
		{"varias fronteras", "OB01SH002BT0003", "OB1SH2BT3"},
		{"cero entre dígitos se conserva", "OB102", "OB102"},
		{"solo dígitos queda igual", "010203", "010203"},
		{"cadena vacía", "", ""},
		{"composición vid+type+subtype", "VID001TP020ST003", "VID1TP20ST3"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, feed.ReduceCategoryID(tc.in))
		})
	}
}

// TestReduceCategoryID_Idempotente reduce(reduce(x)) == reduce(x) para todo x.
func TestReduceCategoryID_Idempotente(t *testing.T) {
	inputs := []string{"OB01SH002", "A0B0C0", "X00", "VID001TP020ST003", "9900", "OB0001"}
	for _, in := range inputs {
		once := feed.ReduceCategoryID(in)
		twice := feed.ReduceCategoryID(once)
		assert.Equal(t, once, twice, "reducir %q dos veces debe ser estable", in)
	}
}

// TestReduceCategoryID_Limite20 los ids compuestos típicos del catálogo caben
// en el límite de 20 caracteres del esquema externo una vez reducidos.
func TestReduceCategoryID_Limite20(t *testing.T) {
	composite := "OB00001" + "TP00002" + "ST00003" // 21 caracteres concatenados
	reduced := feed.ReduceCategoryID(composite)
	assert.Equal(t, "OB1TP2ST3", reduced)
	assert.LessOrEqual(t, len(reduced), 20)
}
