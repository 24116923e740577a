package controls

import "cylinder-lab/internal/scene"

type nullSurface struct{}

func (*nullSurface) Size() (int, int) { return 640, 480 }

func (*nullSurface) OnFrame(func()) {}

func (*nullSurface) AttachControls(*scene.OrbitControls) {}

func (*nullSurface) Render(*scene.Scene, *scene.PerspectiveCamera) {}
