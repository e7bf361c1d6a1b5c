package main

import "photohub/internal/app"

// @title           PhotoHub API
// @version         1.0
// @description     Бронирование фотостудий: регистрация с подтверждением email, восстановление пароля, студии и брони.

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
