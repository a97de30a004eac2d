package persistence

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/Franquicias-api/internal/domain"
)

// Dialect aísla lo que cambia entre motores: placeholders, clasificación de errores de
// constraints y el directorio de migraciones.
type Dialect interface {
	// Name identifica el motor y coincide con el subdirectorio de migraciones.
	Name() string
	// Rebind convierte una consulta escrita con placeholders '?' al formato del motor.
	Rebind(query string) string
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
}

// RebindDollar reescribe '?' como $1, $2, ... ignorando los que aparecen dentro de literales.
func RebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// classify traduce errores del driver a la taxonomía de dominio.
func classify(d Dialect, op string, err error) error {
	switch {
	case d.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicate)
	case d.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}
