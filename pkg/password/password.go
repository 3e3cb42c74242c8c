// Package password genera contraseñas temporales para el flujo de
// invitación de usuarios.
package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// alphabet incluye letras, dígitos y símbolos aceptados por el formulario
// de login del frontend.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// TempLength longitud de las contraseñas temporales de invitación.
const TempLength = 12

// Generate produce una contraseña aleatoria de la longitud indicada usando
// crypto/rand (nunca math/rand: estas credenciales viajan por email).
func Generate(length int) (string, error) {
	if length <= 0 {
		length = TempLength
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("password: generar aleatorio: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
