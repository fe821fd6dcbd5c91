package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Index        int                    `json:"index"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Color        string                 `json:"color,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult is the primary-ray hit through one pixel
type InspectResult struct {
	Hit       core.Hit
	Point     core.Vec3
	Normal    core.Vec3 // Facing the camera
	FrontFace bool      // The unoriented normal already faced the camera
	Color     core.Vec3
}

// inspectPixel casts the pixel-center ray through (row, col) and returns the nearest hit
func inspectPixel(sceneObj *scene.Scene, sb *core.SceneBuffers, row, col int) InspectResult {
	ray := core.NewRay(sceneObj.Camera.Origin(), sceneObj.Camera.PixelDirection(row, col))
	hit := geometry.GetIntersection(ray, sb)
	if !hit.IsHit() {
		return InspectResult{Hit: hit}
	}

	p := ray.At(hit.T)
	n := geometry.Normal(hit, p, sb)
	frontFace := core.Dot(n, ray.Direction) <= 0
	if !frontFace {
		n = n.Mul(-1)
	}
	return InspectResult{
		Hit:       hit,
		Point:     p,
		Normal:    n,
		FrontFace: frontFace,
		Color:     geometry.Color(hit, sb),
	}
}

// extractGeometryInfo describes the scene record behind a buffer column
func extractGeometryInfo(sceneObj *scene.Scene, hit core.Hit) map[string]interface{} {
	properties := make(map[string]interface{})

	switch hit.Kind {
	case core.KindSphere:
		sp := sceneObj.Spheres[hit.Index]
		properties["center"] = sp.Origin
		properties["radius"] = sp.Radius

	case core.KindPlane:
		pl := sceneObj.Planes[hit.Index]
		properties["origin"] = pl.Origin
		properties["normal"] = pl.Normal

	case core.KindRectangle:
		rc := sceneObj.Rectangles[hit.Index]
		properties["origin"] = rc.Origin
		properties["u"] = rc.U
		properties["v"] = rc.V
		properties["orientation"] = rc.Orientation

	case core.KindParaboloid:
		// Columns 2i and 2i+1 are the two shells of paraboloid i
		pb := sceneObj.Paraboloids[hit.Index/2]
		properties["paraboloid"] = hit.Index / 2
		properties["origin"] = pb.Origin
		properties["a"] = pb.A
		properties["b"] = pb.B
		properties["height"] = pb.Height
		properties["orientation"] = pb.Orientation
		if hit.Index%2 == 0 {
			properties["shell"] = "primary"
		} else {
			properties["shell"] = "offset"
		}
	}
	return properties
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	cam := sceneObj.Camera.Config()
	if pixelX < 0 || pixelX >= cam.Width || pixelY < 0 || pixelY >= cam.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	sb, err := sceneObj.Buffers()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, sb, pixelY, pixelX)
	if !result.Hit.IsHit() {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Index: -1})
		return
	}

	rgb := core.ClampColorVec(result.Color)
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: result.Hit.Kind.String(),
		Index:        result.Hit.Index,
		Point:        result.Point,
		Normal:       result.Normal,
		Distance:     result.Hit.T,
		FrontFace:    result.FrontFace,
		Color:        fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]),
		Properties:   extractGeometryInfo(sceneObj, result.Hit),
	})
}
