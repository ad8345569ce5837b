package router

import "go.uber.org/fx"

// Module provides the gin engine serving storefront and staff routes.
var Module = fx.Provide(Setup)
