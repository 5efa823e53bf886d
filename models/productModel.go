package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductBase holds the columns every product variant shares. Slugs are
// unique per variant table, not globally.
type ProductBase struct {
	CategoryID  uint    `json:"categoryId" binding:"required"`
	Slug        string  `json:"slug" gorm:"uniqueIndex;size:250" binding:"required"`
	Title       string  `json:"title" gorm:"size:250" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" gorm:"type:decimal(9,2)" binding:"required"`
	ImageURL    string  `json:"imageUrl"`
}

type Notebook struct {
	gorm.Model
	ProductBase   `gorm:"embedded"`
	DisplayType   string `json:"displayType" gorm:"size:250"`
	ProcessorFreq string `json:"processorFreq" gorm:"size:250"`
	Diagonal      string `json:"diagonal" gorm:"size:250"`
	Video         string `json:"video" gorm:"size:250"`
	RAM           string `json:"ram" gorm:"size:250"`
	OS            string `json:"os" gorm:"size:250"`
	Battery       string `json:"battery" gorm:"size:250"`
}

type Smartphone struct {
	gorm.Model
	ProductBase `gorm:"embedded"`
	Diagonal    string `json:"diagonal" gorm:"size:250"`
	DisplayType string `json:"displayType" gorm:"size:250"`
	Resolution  string `json:"resolution" gorm:"size:250"`
	RAM         string `json:"ram" gorm:"size:250"`
	SD          bool   `json:"sd"`
	SDVolume    string `json:"sdVolume" gorm:"size:250"`
	Battery     string `json:"battery" gorm:"size:250"`
	MainCam     string `json:"mainCam" gorm:"size:250"`
	FrontalCam  string `json:"frontalCam" gorm:"size:250"`
}

type SmartTV struct {
	gorm.Model
	ProductBase     `gorm:"embedded"`
	Diagonal        string         `json:"diagonal" gorm:"size:250"`
	Resolution      string         `json:"resolution" gorm:"size:250"`
	BuiltInBrowser  bool           `json:"builtInBrowser"`
	BuiltInApps     datatypes.JSON `json:"builtInApps"`
}

const (
	ConnectionTypeWire     = "wire"
	ConnectionTypeWireless = "wireless"

	FasteningEarBuds     = "earbuds"
	FasteningVerticalBow = "vertical_bow"
)

type Headphones struct {
	gorm.Model
	ProductBase    `gorm:"embedded"`
	ConnectionType string `json:"connectionType" gorm:"size:100;default:wire" binding:"omitempty,oneof=wire wireless"`
	Fastening      string `json:"fastening" gorm:"size:100;default:earbuds" binding:"omitempty,oneof=earbuds vertical_bow"`
	SpeakerFreq    string `json:"speakerFreq" gorm:"size:250"`
	Battery        string `json:"battery" gorm:"size:250"`
}

func (n *Notebook) Ref() ProductRef {
	return ProductRef{ProductType: TypeNotebook, ID: n.ID, CategoryID: n.CategoryID, Slug: n.Slug, Title: n.Title, Price: n.Price, ImageURL: n.ImageURL}
}

func (s *Smartphone) Ref() ProductRef {
	return ProductRef{ProductType: TypeSmartphone, ID: s.ID, CategoryID: s.CategoryID, Slug: s.Slug, Title: s.Title, Price: s.Price, ImageURL: s.ImageURL}
}

func (s *SmartTV) Ref() ProductRef {
	return ProductRef{ProductType: TypeSmartTV, ID: s.ID, CategoryID: s.CategoryID, Slug: s.Slug, Title: s.Title, Price: s.Price, ImageURL: s.ImageURL}
}

func (h *Headphones) Ref() ProductRef {
	return ProductRef{ProductType: TypeHeadphones, ID: h.ID, CategoryID: h.CategoryID, Slug: h.Slug, Title: h.Title, Price: h.Price, ImageURL: h.ImageURL}
}

// Specs returns the label -> value table rendered on the detail page.
func (n *Notebook) Specs() map[string]string {
	return map[string]string{
		"Diagonal":            n.Diagonal,
		"Display type":        n.DisplayType,
		"RAM":                 n.RAM,
		"Processor frequency": n.ProcessorFreq,
		"Video card":          n.Video,
		"Battery life":        n.Battery,
		"Operating system":    n.OS,
	}
}

func (s *Smartphone) Specs() map[string]string {
	specs := map[string]string{
		"Diagonal":       s.Diagonal,
		"Display type":   s.DisplayType,
		"Resolution":     s.Resolution,
		"RAM":            s.RAM,
		"Battery life":   s.Battery,
		"Main camera":    s.MainCam,
		"Frontal camera": s.FrontalCam,
	}
	if s.SD {
		specs["Maximal SD card volume"] = s.SDVolume
	}
	return specs
}

func (s *SmartTV) Specs() map[string]string {
	return map[string]string{
		"Diagonal":      s.Diagonal,
		"Resolution":    s.Resolution,
		"Built-in apps": string(s.BuiltInApps),
	}
}

func (h *Headphones) Specs() map[string]string {
	return map[string]string{
		"Connection type":      h.ConnectionType,
		"Headphones fastening": h.Fastening,
		"Speaker frequency":    h.SpeakerFreq,
		"Battery life":         h.Battery,
	}
}
