// Command productsvc runs the product service and its maintenance tasks.
//
//	productsvc serve             # HTTP + gRPC until SIGINT/SIGTERM
//	productsvc migrate           # apply pending migrations
//	productsvc migrate:rollback  # undo the last batch
//	productsvc migrate:status
//	productsvc seed              # load sample products
//	productsvc route:list        # print the HTTP routes
//
// Configuration comes from config/app.json, .env and the environment;
// see package config.
package main
