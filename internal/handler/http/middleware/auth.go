package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/expenseflow/expense-backend-go/internal/domain/auth"
	"github.com/expenseflow/expense-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Claims pulls the identity fields handlers need from the verified token.
func Claims(r *http.Request) (userID string, companyID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", "", auth.ErrInvalidToken
	}

	userID, _ = claims["user_id"].(string)
	companyID, _ = claims["company_id"].(string)
	role, _ = claims["role"].(string)
	if userID == "" || companyID == "" {
		return "", "", "", auth.ErrInvalidToken
	}

	return userID, companyID, role, nil
}
