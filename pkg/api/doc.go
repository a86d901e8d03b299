// Package api provides the REST API for CoinFeed
// @title CoinFeed API
// @version 1.0
// @description REST API serving music coins created through the platform referrer
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/CoinFeed
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /
// @schemes http https
package api
