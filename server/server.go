package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/scholara/portal/auth"
	"github.com/scholara/portal/gateway"
	"github.com/scholara/portal/internal/config"
	"github.com/scholara/portal/server/authstate"
	"github.com/scholara/portal/session"
)

// Server is the portal's HTTP layer. It renders server-side pages and
// proxies every data operation to the API gateway on behalf of the
// browser session making the request.
type Server struct {
	env       string
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	sessions  *session.Manager
	google    *auth.Google
	authState authstate.Repo
}

// New builds the portal server. google may be nil, which disables the
// federated sign-in routes' happy path but keeps them registered.
func New(config config.Config, sessions *session.Manager, google *auth.Google) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		config:    config,
		sessions:  sessions,
		google:    google,
		authState: authstate.NewInMemoryRepo(),
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// gatewayClient binds a gateway client to the session's auth headers.
// Clients are cheap; one per request keeps token refresh race-free.
func (s *Server) gatewayClient(store *session.Store) *gateway.Client {
	return gateway.NewClient(s.config.GetGatewayURL(), store,
		gateway.WithGraphQLURL(s.config.GetGraphQLURL()))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
