package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/fixture-cleanup/internal/application/dto"
	"github.com/jhoicas/fixture-cleanup/internal/domain/entity"
)

// LocalSession key de Fiber Locals donde queda la sesión resuelta.
const LocalSession = "session"

// sessionResolver contrato mínimo para validar el token. Lo implementa *auth.AuthUseCase.
type sessionResolver interface {
	ResolveSession(token string) (*entity.Session, error)
}

// SessionMiddleware resuelve la sesión desde "Authorization: Bearer <token>" o, si no hay header,
// desde la cookie cookieName. Nunca corta la petición: un token ausente o inválido deja la
// petición sin sesión y RequireSession decide.
func SessionMiddleware(resolver sessionResolver, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" && cookieName != "" {
			token = strings.TrimSpace(c.Cookies(cookieName))
		}
		if token == "" {
			return c.Next()
		}
		if session, err := resolver.ResolveSession(token); err == nil && session != nil {
			c.Locals(LocalSession, session)
		}
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireSession responde 401 si la petición no trae una sesión válida.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetSession(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.CleanupErrorResponse{Error: dto.NoSessionError})
		}
		return c.Next()
	}
}

// RequireCapability responde 403 si el rol de la sesión no concede la capacidad.
// Debe usarse DESPUÉS de RequireSession.
func RequireCapability(capability entity.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.CleanupErrorResponse{Error: dto.NoSessionError})
		}
		if !session.Can(capability) {
			return c.Status(fiber.StatusForbidden).JSON(dto.CleanupErrorResponse{Error: dto.AdminRequiredError})
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto o nil.
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}
