package postgresosm

const (
	// coordScale - osm2pgsql хранит координаты узлов целыми числами в 1e-7 градуса
	coordScale = 1e7

	// nodeChunkSize - размер пачки идентификаторов в запросе координат
	nodeChunkSize = 50000

	// nodeQueryParallelism - сколько пачек запрашивается одновременно
	nodeQueryParallelism = 4
)

const (
	planetPointTable = "planet_osm_point"
	planetLineTable  = "planet_osm_line"
	planetNodesTable = "planet_osm_nodes"
	planetWaysTable  = "planet_osm_ways"
)
