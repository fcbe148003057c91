package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/vgtours/VGT-BookingService/internal/api/handlers"
	"github.com/vgtours/VGT-BookingService/internal/domain"
)

type actorCtxKey struct{}

// Заголовки идентификации, проставляемые шлюзом после аутентификации
const (
	HeaderActorID    = "X-Actor-ID"
	HeaderActorEmail = "X-Actor-Email"
	HeaderActorRole  = "X-Actor-Role"
)

// ActorFromHeaders кладет актора из заголовков шлюза в контекст запроса
// Запросы без заголовков идентификации проходят как guest
func ActorFromHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.Actor{Role: domain.RoleGuest}

		if rawID := r.Header.Get(HeaderActorID); rawID != "" {
			id, err := strconv.ParseInt(rawID, 10, 64)
			if err != nil {
				handlers.RespondBadRequest(w, "invalid actor id header")
				return
			}
			actor.ID = id
			actor.Email = r.Header.Get(HeaderActorEmail)

			role := domain.Role(r.Header.Get(HeaderActorRole))
			switch role {
			case domain.RoleUser, domain.RoleStaff, domain.RoleAdmin:
				actor.Role = role
			default:
				handlers.RespondBadRequest(w, "invalid actor role header")
				return
			}
		}

		ctx := context.WithValue(r.Context(), actorCtxKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthenticated отклоняет запросы без идентифицированного актора
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := GetActor(r.Context())
		if !actor.Role.IsAuthenticated() {
			handlers.RespondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetActor возвращает актора запроса из контекста
// Вне цепочки middleware возвращает guest
func GetActor(ctx context.Context) domain.Actor {
	if actor, ok := ctx.Value(actorCtxKey{}).(domain.Actor); ok {
		return actor
	}
	return domain.Actor{Role: domain.RoleGuest}
}
