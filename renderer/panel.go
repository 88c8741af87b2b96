package renderer

import (
	"log"

	"github.com/richinsley/raymarcher/controls"
	"github.com/richinsley/raymarcher/scene"
)

// ControlSceneSelect is the name of the scene selector control.
const ControlSceneSelect = "SceneSelect"

var effectKeys = map[scene.Effect]rune{
	scene.AmbientOcclusion: '1',
	scene.LensEffect:       '2',
	scene.DarkScene:        '3',
	scene.BarrelDistortion: '4',
}

// NewControlPanel builds the effect toggles and scene selector for r. Every
// callback writes through to the program immediately. Call Apply on the result
// to push the initial values.
func NewControlPanel(r *Renderer, effects map[scene.Effect]bool, initial scene.Scene) *controls.Panel {
	p := controls.NewPanel()

	for _, e := range scene.Effects {
		e := e
		p.AddBool(e.String(), effectKeys[e], effects[e], func(on bool) {
			r.SetEffect(e, on)
		})
	}

	names := make([]string, len(scene.Scenes))
	for i, sc := range scene.Scenes {
		names[i] = sc.String()
	}
	p.AddEnum(ControlSceneSelect, 's', names, initial.String(), func(name string) {
		sc, err := scene.ParseScene(name)
		if err != nil {
			log.Printf("Ignoring scene selection: %v", err)
			return
		}
		r.SelectScene(sc)
	})

	return p
}
