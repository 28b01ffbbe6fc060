// seed_fixtures genera un script SQL que recrea los clientes de prueba de CLEANUP_TARGETS
// (con dos facturas y una foto en uploads cada uno) y un usuario admin para disparar la limpieza.
//
// Uso: SEED_ADMIN_PASSWORD=... go run ./cmd/seed_fixtures [ruta/salida.sql]
// Por defecto escribe: internal/infrastructure/postgres/migrations/900_seed_fixtures.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jhoicas/fixture-cleanup/pkg/config"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const defaultOut = "internal/infrastructure/postgres/migrations/900_seed_fixtures.sql"

func main() {
	outPath := defaultOut
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if len(password) < 8 {
		fmt.Fprintln(os.Stderr, "SEED_ADMIN_PASSWORD debe tener al menos 8 caracteres")
		os.Exit(1)
	}
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash de password: %v\n", err)
		os.Exit(1)
	}

	var b strings.Builder
	b.WriteString("-- Generado por cmd/seed_fixtures. No editar a mano.\n")
	b.WriteString("BEGIN;\n\n")
	fmt.Fprintf(&b,
		"INSERT INTO users (id, email, password_hash, name, role, status) VALUES (%s, %s, %s, %s, 'admin', 'active')\n"+
			"ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = 'admin', status = 'active';\n\n",
		quote(uuid.NewString()), quote(strings.ToLower(email)), quote(string(hash)), quote("Admin"))

	prefix := strings.TrimSuffix(cfg.Storage.PublicPrefix, "/")
	for _, name := range cfg.Cleanup.Targets {
		customerID := uuid.NewString()
		image := fmt.Sprintf("%s/customers/%s.png", prefix, slug(name))
		fmt.Fprintf(&b, "INSERT INTO customers (id, name, image_url) VALUES (%s, %s, %s);\n",
			quote(customerID), quote(name), quote(image))
		for i := 1; i <= 2; i++ {
			fmt.Fprintf(&b, "INSERT INTO invoices (id, customer_id, amount, status) VALUES (%s, %s, %d, 'pending');\n",
				quote(uuid.NewString()), quote(customerID), i*1500)
		}
		b.WriteString("\n")
	}
	b.WriteString("COMMIT;\n")

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s (%d clientes de prueba)\n", outPath, len(cfg.Cleanup.Targets))
}

// quote devuelve un literal SQL con comillas simples escapadas.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// slug convierte "Héctor Simpson" en "hector-simpson" para el nombre del archivo.
func slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, name)
	if err != nil {
		plain = name
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
