package world

import (
	"github.com/plus3/hexview/ecs"
	"go.uber.org/zap"
)

// RenderStage hands the scene and the active camera to the renderer. With
// no renderer, scene or camera the frame is simply not drawn. A render
// error is logged and the pipeline carries on.
type RenderStage struct {
	Logger *zap.Logger

	Context   ecs.Singleton[Context]
	Renderers ecs.Query[struct {
		*RendererTag
		*RendererRef
	}]
	Scenes ecs.Query[struct {
		*SceneTag
		*SceneRef
	}]
}

func (s *RenderStage) Execute(frame *ecs.UpdateFrame) {
	ctx := s.Context.Get()
	_, r, hasRenderer := s.Renderers.First()
	_, sc, hasScene := s.Scenes.First()
	if ctx == nil || ctx.Camera == nil || !hasRenderer || !hasScene || r.Renderer == nil || sc.Scene == nil {
		return
	}

	if err := r.Renderer.Render(sc.Scene, ctx.Camera); err != nil {
		logger(s.Logger).Warn("render failed", zap.Uint64("frame", frame.Frame), zap.Error(err))
	}
}
