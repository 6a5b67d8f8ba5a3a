// Package config centralizes application configuration.
//
// Configuration is assembled from three layers, lowest precedence first:
//
//  1. Struct tag defaults ('default' tags on the partial configs)
//  2. A .env file in the working directory, loaded via godotenv
//  3. Environment variables (SCRAPE_END_PAGE maps to scrape.end_page)
//
// Each subsystem owns its partial config struct; this package only
// composes them and drives viper.
package config
