// Package docs Route Engine API.
//
// Сервис генерации пеших, вело- и автомаршрутов с заездами к интересным местам.
// Маршрут строится внешними движками (Valhalla, резервный OSRM), точки интереса
// берутся из PostGIS и Overpass API.
//
// Основные возможности:
// - Генерация маршрута с учётом уровня "приключенческости" и бюджета расстояния
// - Альтернативные маршруты и живописные объезды
// - Матрица расстояний и привязка точки к дороге
// - Поиск POI по названию, радиусу и прямоугольнику
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//	- application/geo+json
//
// swagger:meta
package docs
