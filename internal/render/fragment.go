// Package render turns product records into HTML sections and splices them
// into the catalog page.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/anahartlab/originals/internal/catalog"
)

// carouselIDPrefixLen bounds how much of the product name ends up in the
// carousel element id. The prefix keeps ids short and stable across
// re-renders of the same product.
const carouselIDPrefixLen = 8

var fragmentTmpl = template.Must(template.New("fragment").Parse(`<section class="u-clearfix u-section-16" id="{{.Record.Name}}">
  <div class="u-clearfix u-sheet u-sheet-1">

    <h3 class="u-align-center u-text u-text-title">{{.Record.SEOTitle}}</h3>
    <p class="u-align-center u-text u-text-seo-description">{{.Record.SEODescription}}</p>

    <p class="u-align-left u-text u-text-description">{{.Record.Description}}<br>Размер: {{.Record.Size}} ({{.Record.Date}} {{.Record.Place}})<br>({{.Record.Material}}, {{.Record.Paint}}, {{.Record.Type}})<br>Цена: {{.Record.Price}}</p>

    <p style="display:none;" class="seo-keywords">{{.Record.SEOKeywords}}</p>

    <div class="custom-expanded u-carousel u-gallery" id="{{.CarouselID}}">
      <ol class="u-carousel-indicators">
{{- range .Slides}}
        <li data-u-target="#{{$.CarouselID}}" data-u-slide-to="{{.Index}}" class="{{if .Active}}u-active {{end}}u-grey-70 u-shape-circle" style="width: 10px; height: 10px;"></li>
{{- end}}
      </ol>
      <div class="u-carousel-inner">
{{- range .Slides}}
        <div class="{{if .Active}}u-active {{end}}u-carousel-item u-gallery-item u-carousel-item-{{.Num}}">
          <div class="u-back-slide">
            <img class="u-back-image u-expanded" src="{{.Src}}">
          </div>
          <div class="u-align-center u-over-slide u-shading u-valign-bottom"></div>
        </div>
{{- end}}
      </div>
    </div>

  </div>
</section>
`))

type slideData struct {
	Index  int
	Num    int
	Src    string
	Active bool
}

type fragmentData struct {
	Record     catalog.Record
	CarouselID string
	Slides     []slideData
}

// CarouselID derives the carousel element id from the product name: a fixed
// prefix of the name, so the id stays identical across re-renders.
func CarouselID(name string) string {
	runes := []rune(name)
	if len(runes) > carouselIDPrefixLen {
		runes = runes[:carouselIDPrefixLen]
	}
	return "carousel-" + string(runes)
}

// RenderFragment builds the HTML section for one product: a carousel with
// one indicator and one slide per image, first slide active, plus the text
// panel. Every interpolated record value is escaped by html/template.
// Identical inputs always produce identical output.
func RenderFragment(rec catalog.Record, images []string) (string, error) {
	data := fragmentData{
		Record:     rec,
		CarouselID: CarouselID(rec.Name),
		Slides:     make([]slideData, 0, len(images)),
	}
	for i, img := range images {
		data.Slides = append(data.Slides, slideData{
			Index:  i,
			Num:    i + 1,
			Src:    fmt.Sprintf("images/%s/%s", rec.Name, img),
			Active: i == 0,
		})
	}

	var out strings.Builder
	if err := fragmentTmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to render fragment for %q: %w", rec.Name, err)
	}
	return out.String(), nil
}
