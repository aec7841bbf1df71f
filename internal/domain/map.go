package domain

// Node - узел OSM. Name заполнен только у именованных узлов
type Node struct {
	ID   int64   `json:"id" db:"id"`
	Lat  float64 `json:"lat" db:"lat"`
	Lon  float64 `json:"lon" db:"lon"`
	Name string  `json:"name,omitempty" db:"name"`
}

// Way - дорога OSM, пригодная для маршрутизации
type Way struct {
	ID      int64   `json:"id" db:"id"`
	NodeIDs []int64 `json:"node_ids" db:"nodes"`
	Name    string  `json:"name,omitempty" db:"name"`
	Highway string  `json:"highway" db:"highway"`
	Oneway  bool    `json:"oneway" db:"oneway"`
}

// MapData - исходные данные для построения графа
type MapData struct {
	Nodes  []Node
	Ways   []Way
	Source string
}

// Location - именованная точка, найденная по названию
type Location struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
