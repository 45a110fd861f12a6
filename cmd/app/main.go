// @title Graphtec Service API
// @version 1.0.0
// @description API для управления режущим плоттером Graphtec по USB: извлечение контуров из Gerber-слоев, опрос состояния и передача заданий резки.
// @host localhost:8082
// @BasePath /api/v1
package main

import "github.com/iwtcode/graphtecAdapter/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
