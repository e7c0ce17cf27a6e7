// @title           StartupHub API
// @version         1.0
// @description     Startup marketplace and collaboration platform API.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "startuphub_backend/internal/app"

func main() {
	app.Run()
}
