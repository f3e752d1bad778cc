package render

import (
	"strings"
	"testing"

	"github.com/anahartlab/originals/internal/catalog"
)

func testRecord() catalog.Record {
	return catalog.Record{
		Name:           "vase1",
		Title:          "Редкая ваза",
		Description:    "Это редкая ваза.",
		Size:           "20x30",
		Date:           "2021",
		Price:          "5000",
		Material:       "глина",
		Paint:          "акрил",
		Type:           "ваза",
		Place:          "Москва",
		SEOTitle:       "Редкая ваза",
		SEODescription: "Авторская керамика",
		SEOKeywords:    "ваза, керамика",
	}
}

func TestCarouselID(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		expected string
	}{
		{"long name truncated to prefix", "bluevase2024", "carousel-bluevase"},
		{"short name kept whole", "cup", "carousel-cup"},
		{"multibyte name counted in runes", "тарелочка", "carousel-тарелочк"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CarouselID(tt.product); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderFragmentSlides(t *testing.T) {
	images := []string{"main.jpg", "a.jpg", "b.jpg", "c.jpg", "d.jpg"}
	out, err := RenderFragment(testRecord(), images)
	if err != nil {
		t.Fatal(err)
	}

	if got := strings.Count(out, "data-u-slide-to"); got != len(images) {
		t.Errorf("Expected %d indicators, got %d", len(images), got)
	}
	if got := strings.Count(out, "u-back-image"); got != len(images) {
		t.Errorf("Expected %d slides, got %d", len(images), got)
	}
	if got := strings.Count(out, "u-active"); got != 2 {
		t.Errorf("Expected one active indicator and one active slide, got %d active markers", got)
	}
	if !strings.Contains(out, `class="u-active u-carousel-item u-gallery-item u-carousel-item-1"`) {
		t.Error("First slide is not the active one")
	}
	for _, img := range images {
		if !strings.Contains(out, "images/vase1/"+img) {
			t.Errorf("Missing slide source for %s", img)
		}
	}
	if !strings.Contains(out, `id="carousel-vase1"`) {
		t.Error("Missing derived carousel id")
	}
	if !strings.Contains(out, `id="vase1"`) {
		t.Error("Missing product section id")
	}
}

func TestRenderFragmentDeterministic(t *testing.T) {
	images := []string{"a.jpg", "b.jpg"}
	first, err := RenderFragment(testRecord(), images)
	if err != nil {
		t.Fatal(err)
	}
	second, err := RenderFragment(testRecord(), images)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Identical inputs produced different markup")
	}
}

func TestRenderFragmentEscapesFields(t *testing.T) {
	rec := testRecord()
	rec.SEOTitle = `<script>alert("x")</script>`
	rec.Description = `5 > 4 & "quotes"`

	out, err := RenderFragment(rec, []string{"a.jpg"})
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(out, "<script>") {
		t.Error("Markup-significant field value was not escaped")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("Expected escaped script tag in output")
	}
}

func TestRenderFragmentTextPanel(t *testing.T) {
	out, err := RenderFragment(testRecord(), []string{"a.jpg"})
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Редкая ваза",
		"Авторская керамика",
		"Размер: 20x30 (2021 Москва)",
		"(глина, акрил, ваза)",
		"Цена: 5000",
		"ваза, керамика",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Rendered text panel missing %q", want)
		}
	}
}
