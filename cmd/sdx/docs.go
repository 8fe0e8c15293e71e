package main

// General API documentation for swaggo. Run `swag init -g cmd/sdx/docs.go -o docs`
// to regenerate docs/.
//
// @title           sdx API
// @version         1.0
// @description     OpenAI-compatible image generation backed by stable-diffusion.cpp's sd-cli.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
