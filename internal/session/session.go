// Paquete session — manejo de la sesión del portal.
// La sesión se persiste en dos cookies que viven y mueren juntas: el
// bearer token opaco que emite el backend y el registro de usuario
// cifrado con AES-256-GCM. Ante corrupción de cualquiera de las dos,
// ambas se limpian y el portal arranca sin autenticar.
package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Nombres de las cookies de sesión.
const (
	CookieToken   = "sirec_token"
	CookieUsuario = "sirec_usuario"
)

// Edad máxima de las cookies de sesión (24 horas).
const cookieMaxAge = 24 * 60 * 60

// Sesion — estado autenticado de un usuario del portal.
// Exactamente una sesión activa por navegador.
type Sesion struct {
	// UsuarioID — id del usuario en el backend.
	UsuarioID int `json:"usuarioId"`
	// Correo con el que inició sesión.
	Correo string `json:"correo"`
	// Nombre para mostrar.
	Nombre string `json:"nombre"`
	// Rol normalizado del portal (roles.Normalizar).
	Rol string `json:"rol"`
	// RolBackend — etiqueta cruda que entregó el backend.
	RolBackend string `json:"rolBackend"`
	// Token — bearer token opaco; no se serializa dentro del registro
	// cifrado, viaja en su propia cookie.
	Token string `json:"-"`
}

// Expirada indica si el token de la sesión ya venció.
// El token es opaco para el portal; si resulta ser un JWT con claim exp
// se usa para no reanudar sesiones visiblemente muertas. Un token que no
// parsea como JWT se trata como no expirante (la validación real la hace
// el backend en cada request).
func (s *Sesion) Expirada() bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(s.Token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}

// Manager — cifra y descifra el registro de usuario y administra las
// cookies de sesión.
type Manager struct {
	gcm    cipher.AEAD
	secure bool
}

// NewManager crea un Manager de sesiones.
// key — clave para AES-256-GCM; se acepta base64 de 32 bytes o una frase
// arbitraria que se reduce con SHA-256. Si está vacía se genera una clave
// aleatoria (las sesiones no sobreviven reinicios del portal).
func NewManager(key string, secure bool) (*Manager, error) {
	var keyBytes []byte

	if key == "" {
		keyBytes = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, keyBytes); err != nil {
			return nil, fmt.Errorf("generando clave de sesión: %w", err)
		}
	} else {
		var err error
		keyBytes, err = base64.StdEncoding.DecodeString(key)
		if err != nil || len(keyBytes) != 32 {
			h := sha256.Sum256([]byte(key))
			keyBytes = h[:]
		}
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("creando cipher AES: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creando GCM: %w", err)
	}

	return &Manager{gcm: gcm, secure: secure}, nil
}

// cifrar serializa la sesión y la cifra; el nonce va antepuesto al
// ciphertext y todo se codifica en base64 URL-safe.
func (m *Manager) cifrar(s *Sesion) (string, error) {
	plano, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("serializando sesión: %w", err)
	}

	nonce := make([]byte, m.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generando nonce: %w", err)
	}

	cifrado := m.gcm.Seal(nonce, nonce, plano, nil)
	return base64.URLEncoding.EncodeToString(cifrado), nil
}

// descifrar revierte cifrar. Cualquier alteración del cookie falla aquí.
func (m *Manager) descifrar(valor string) (*Sesion, error) {
	cifrado, err := base64.URLEncoding.DecodeString(valor)
	if err != nil {
		return nil, fmt.Errorf("decodificando base64: %w", err)
	}

	nonceSize := m.gcm.NonceSize()
	if len(cifrado) < nonceSize {
		return nil, errors.New("registro de sesión demasiado corto")
	}

	nonce, cifrado := cifrado[:nonceSize], cifrado[nonceSize:]
	plano, err := m.gcm.Open(nil, nonce, cifrado, nil)
	if err != nil {
		return nil, fmt.Errorf("descifrando sesión: %w", err)
	}

	var s Sesion
	if err := json.Unmarshal(plano, &s); err != nil {
		return nil, fmt.Errorf("deserializando sesión: %w", err)
	}
	return &s, nil
}

// Guardar establece ambas cookies de sesión en la respuesta.
func (m *Manager) Guardar(w http.ResponseWriter, s *Sesion) error {
	registro, err := m.cifrar(s)
	if err != nil {
		return err
	}

	http.SetCookie(w, m.cookie(CookieToken, s.Token, cookieMaxAge))
	http.SetCookie(w, m.cookie(CookieUsuario, registro, cookieMaxAge))
	return nil
}

// Desde restaura la sesión a partir de las cookies del request.
// Devuelve (nil, nil) si falta cualquiera de las dos cookies; devuelve
// error si el registro está corrupto. No hay re-validación contra el
// servidor: ambas cookies presentes equivalen a una sesión viva.
func (m *Manager) Desde(r *http.Request) (*Sesion, error) {
	token, err := r.Cookie(CookieToken)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	registro, err := r.Cookie(CookieUsuario)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	s, err := m.descifrar(registro.Value)
	if err != nil {
		return nil, err
	}
	s.Token = token.Value
	return s, nil
}

// Limpiar elimina ambas cookies de sesión (logout o corrupción detectada).
func (m *Manager) Limpiar(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(CookieToken, "", -1))
	http.SetCookie(w, m.cookie(CookieUsuario, "", -1))
}

// cookie construye una cookie de sesión con los flags estándar del portal.
func (m *Manager) cookie(nombre, valor string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     nombre,
		Value:    valor,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
