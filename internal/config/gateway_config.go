package config

// GatewayConfig resolves the API gateway endpoints. Both are fixed at
// startup and not user-configurable at runtime.
type GatewayConfig interface {
	GetGatewayURL() string
	GetGraphQLURL() string
}

type Gateway struct{}

var _ GatewayConfig = Gateway{}

func (Gateway) GetGatewayURL() string {
	return GetEnv("API_GATEWAY_URL", "http://localhost:8084")
}

func (g Gateway) GetGraphQLURL() string {
	return GetEnv("GRAPHQL_URL", g.GetGatewayURL()+"/graphql")
}
