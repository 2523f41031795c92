package entity

// ProductAttributes atributos conocidos del producto, ya resueltos a sus
// valores legibles. Extra conserva códigos no contemplados para compatibilidad.
type ProductAttributes struct {
	Brand          string
	Model          string
	TypeProduct    string
	UpperMaterial  string
	LiningMaterial string
	MaterialSole   string
	Color          string
	Country        string
	HeelHeight     string
	RhodeProduct   string
	Extra          map[string]string
}

// ProductRecord fila cruda del catálogo antes de resolver imágenes.
// Los campos *ImageID referencian el almacén de archivos; 0 = sin imagen.
type ProductRecord struct {
	ID             int64
	SectionID      int64
	Name           string
	DetailImageID  int64
	PreviewImageID int64
	GalleryIDs     []int64
	Attributes     ProductAttributes
	Sort           int
	ShowCounter    int
	DetailURL      string
	Vid            string
	TypeProduct    string
	SubtypeProduct string
	Article        string
	SizeRange      string
}

// Product producto exportable con sus imágenes ya resueltas a rutas públicas válidas.
type Product struct {
	ID             int64
	Name           string
	DetailImage    string // obligatoria; un producto sin imagen de detalle no se exporta
	PreviewImage   string // opcional
	Gallery        []string
	Attributes     ProductAttributes
	Sort           int
	ShowCounter    int
	DetailURL      string
	Vid            string
	TypeProduct    string
	SubtypeProduct string
	Article        string
	SizeRange      string
}
