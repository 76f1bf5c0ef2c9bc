package middleware

import (
	"net"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/iho/compta/internal/domain"
)

// AuditContext attaches the request actor recorded by audit entries. Mount it
// after AuthMiddleware so the authenticated username is picked up.
func AuditContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := domain.AuditActor{
			IPAddress: clientIP(r.RemoteAddr),
			UserAgent: r.UserAgent(),
			RequestID: chimiddleware.GetReqID(r.Context()),
		}
		if user, ok := GetUserFromContext(r.Context()); ok {
			actor.UserID = user.Username
		}

		next.ServeHTTP(w, r.WithContext(domain.ContextWithAuditActor(r.Context(), actor)))
	})
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
