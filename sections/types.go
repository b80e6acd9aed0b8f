// Package sections defines the content-section model produced by the CMS
// editor and the renderer that turns a section list into HTML.
package sections

// Type discriminates the section union on the wire.
type Type string

const (
	TypeHero         Type = "hero"
	TypeText         Type = "text"
	TypeImage        Type = "image"
	TypeGallery      Type = "gallery"
	TypePopularPosts Type = "popular-posts"
	TypeBreadcrumb   Type = "breadcrumb"
	TypeVideo        Type = "video"
)

// Section is the sealed union of content section kinds. Every section is a
// pure value: rendering depends only on its Type tag and its own fields.
type Section interface {
	Kind() Type
}

// Alignment values used by text and image sections.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Gallery layout values.
const (
	LayoutGrid     = "grid"
	LayoutMasonry  = "masonry"
	LayoutCarousel = "carousel"
	LayoutPostcard = "postcard"
	LayoutComplex  = "complex"
)

// Gallery spacing values.
const (
	SpacingSm = "sm"
	SpacingMd = "md"
	SpacingLg = "lg"
)

// Hero is the full-bleed banner at the top of a post page. It is rendered by
// the full-page layout, not by Body.
type Hero struct {
	BackgroundImage string            `json:"backgroundImage"`
	BackgroundVideo string            `json:"backgroundVideo"`
	Title           string            `json:"title"`
	Subtitle        string            `json:"subtitle"`
	Author          string            `json:"author"`
	Date            string            `json:"date"`
	ReadTime        string            `json:"readTime"`
	OverlayOpacity  float64           `json:"overlayOpacity"`
	Height          map[string]string `json:"height"`
	TitleSize       map[string]string `json:"titleSize"`
	Parallax        bool              `json:"parallax"`
}

func (Hero) Kind() Type { return TypeHero }

// Text carries trusted HTML authored in the CMS, rendered verbatim.
type Text struct {
	Content   string `json:"content"`
	Alignment string `json:"alignment"`
	DropCap   bool   `json:"dropCap"`
}

func (Text) Kind() Type { return TypeText }

// Image is a single inline image with optional caption and decoration.
type Image struct {
	URL       string `json:"url"`
	Alt       string `json:"alt"`
	Caption   string `json:"caption"`
	Alignment string `json:"alignment"`
	Rounded   bool   `json:"rounded"`
	Shadow    bool   `json:"shadow"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

func (Image) Kind() Type { return TypeImage }

// GalleryImage is one tile in a gallery. A tile without a URL still occupies
// its grid position.
type GalleryImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Caption string `json:"caption"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Gallery is an ordered grid of images.
type Gallery struct {
	Images  []GalleryImage `json:"images"`
	Layout  string         `json:"layout"`
	Columns int            `json:"columns"`
	Spacing string         `json:"spacing"`
}

func (Gallery) Kind() Type { return TypeGallery }

// PostRef is a compact post summary inside a popular-posts section.
type PostRef struct {
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Image       string `json:"image"`
	ReadTime    string `json:"readTime"`
	PublishDate string `json:"publishDate"`
	Href        string `json:"href"`
}

// PopularPosts is a two-column block: one optional featured post plus a list
// of side posts.
type PopularPosts struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Featured    *PostRef  `json:"featured"`
	SidePosts   []PostRef `json:"sidePosts"`
}

func (PopularPosts) Kind() Type { return TypePopularPosts }

// Crumb is one breadcrumb entry.
type Crumb struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Breadcrumb is the navigation trail above the post body. Rendered by the
// full-page layout, not by Body.
type Breadcrumb struct {
	Enabled bool    `json:"enabled"`
	Items   []Crumb `json:"items"`
}

func (Breadcrumb) Kind() Type { return TypeBreadcrumb }

// Video is an inline video player.
type Video struct {
	URL      string            `json:"url"`
	Poster   string            `json:"poster"`
	Title    string            `json:"title"`
	Caption  string            `json:"caption"`
	Autoplay bool              `json:"autoplay"`
	Muted    bool              `json:"muted"`
	Loop     bool              `json:"loop"`
	Controls bool              `json:"controls"`
	Height   map[string]string `json:"height"`
}

func (Video) Kind() Type { return TypeVideo }
