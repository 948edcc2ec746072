package main

// General API documentation for swaggo. Run `swag init -g cmd/satscan/docs.go -o docs` to regenerate.
//
// @title           satscan API
// @version         1.0
// @description     Control surface for the satscan scene simulation.
//
// @BasePath  /
//
// @schemes http
