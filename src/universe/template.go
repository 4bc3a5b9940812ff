package universe

import (
	"sort"

	"github.com/pkg/errors"
)

//ErrUnknownTemplate is returned when the requested template is not registered
var ErrUnknownTemplate = errors.New("unknown template")

//Template represent the seeding template which can used to settle the grid with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [col,row] coordinates
}

var templates = map[string]Template{}

func init() {
	AddTemplate(Template{"blinker", "period 2 oscillator", [][]int{{2, 1}, {2, 2}, {2, 3}}})
	AddTemplate(Template{"glider", "the smallest spaceship", [][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}})
	AddTemplate(Template{"testSample", "the test sample with 3 stable patterns", [][]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}})
}

//AddTemplate registers the seeding template
func AddTemplate(tmpl Template) {
	templates[tmpl.Name] = tmpl
}

//LookupTemplate returns the registered template by name
func LookupTemplate(name string) (Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return Template{}, errors.Wrapf(ErrUnknownTemplate, "%q", name)
	}
	return tmpl, nil
}

//TemplateNames returns the sorted names of all registered templates
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
