// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/softbody/builder"
	"github.com/katalvlaran/softbody/meshio"
)

var validate = validator.New()

// Recipe describes one body to build.
type Recipe struct {
	Kind      string  `yaml:"kind" validate:"required,oneof=patch rope trimesh hull ellipsoid tetgen vtk gmsh"`
	Seed      int64   `yaml:"seed"`
	Randomize bool    `yaml:"randomize"`
	Schedule  bool    `yaml:"schedule"`
	Mass      float64 `yaml:"mass" validate:"gte=0,lte=1e9"`

	Volume VolumeRecipe `yaml:"volume"`

	Patch     *PatchRecipe     `yaml:"patch" validate:"required_if=Kind patch"`
	Rope      *RopeRecipe      `yaml:"rope" validate:"required_if=Kind rope"`
	TriMesh   *TriMeshRecipe   `yaml:"trimesh" validate:"required_if=Kind trimesh"`
	Hull      *HullRecipe      `yaml:"hull" validate:"required_if=Kind hull"`
	Ellipsoid *EllipsoidRecipe `yaml:"ellipsoid" validate:"required_if=Kind ellipsoid"`
	File      *FileRecipe      `yaml:"file" validate:"required_if=Kind tetgen,required_if=Kind vtk,required_if=Kind gmsh"`
}

// VolumeRecipe tunes tetrahedral construction.
type VolumeRecipe struct {
	Strict     bool  `yaml:"strict"`
	TetraLinks *bool `yaml:"tetra_links"`
	FaceLinks  bool  `yaml:"face_links"`
	Workers    int   `yaml:"workers" validate:"gte=0,lte=256"`
}

type PatchRecipe struct {
	Corners   [][]float64 `yaml:"corners" validate:"len=4,dive,len=3"`
	RX        int         `yaml:"rx" validate:"gte=2"`
	RY        int         `yaml:"ry" validate:"gte=2"`
	Fixed     int         `yaml:"fixed" validate:"gte=0,lte=15"`
	Diagonals bool        `yaml:"diagonals"`
}

type RopeRecipe struct {
	From       []float64 `yaml:"from" validate:"len=3"`
	To         []float64 `yaml:"to" validate:"len=3"`
	Resolution int       `yaml:"resolution" validate:"gte=0"`
	Fixed      int       `yaml:"fixed" validate:"gte=0,lte=3"`
}

type TriMeshRecipe struct {
	Vertices  [][]float64 `yaml:"vertices" validate:"required,dive,len=3"`
	Triangles []int       `yaml:"triangles" validate:"required,dive,gte=0"`
}

type HullRecipe struct {
	Points [][]float64 `yaml:"points" validate:"min=4,dive,len=3"`
}

type EllipsoidRecipe struct {
	Center     []float64 `yaml:"center" validate:"len=3"`
	Radius     []float64 `yaml:"radius" validate:"len=3"`
	Resolution int       `yaml:"resolution" validate:"gte=4"`
}

// FileRecipe names mesh files. Relative paths resolve against the recipe's
// directory. For tetgen, Path is the .node file and Ele defaults to the
// sibling .ele file.
type FileRecipe struct {
	Path string `yaml:"path" validate:"required"`
	Ele  string `yaml:"ele"`
}

// loadRecipe reads and validates the recipe at path.
func loadRecipe(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}
	r, err := parseRecipe(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if r.File != nil {
		r.File.resolve(filepath.Dir(path))
	}

	return r, nil
}

// parseRecipe decodes and validates a recipe document.
func parseRecipe(data []byte) (*Recipe, error) {
	r := &Recipe{Mass: 1}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(r); err != nil {
		return nil, fmt.Errorf("decode recipe: %w", err)
	}
	if err := validate.Struct(r); err != nil {
		return nil, formatValidationError(err)
	}

	return r, nil
}

func (f *FileRecipe) resolve(dir string) {
	if f.Path != "" && !filepath.IsAbs(f.Path) {
		f.Path = filepath.Join(dir, f.Path)
	}
	if f.Ele != "" && !filepath.IsAbs(f.Ele) {
		f.Ele = filepath.Join(dir, f.Ele)
	}
}

// formatValidationError flattens validator errors into one line.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, e := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q", e.Namespace(), e.Tag())
		if e.Param() != "" {
			msgs[i] = fmt.Sprintf("%s: failed %q (%s)", e.Namespace(), e.Tag(), e.Param())
		}
	}

	return fmt.Errorf("invalid recipe: %s", strings.Join(msgs, "; "))
}

// options maps the recipe's shared settings to builder options.
func (r *Recipe) options() []builder.BuilderOption {
	opts := []builder.BuilderOption{
		builder.WithSource(r.Kind),
		builder.WithMass(r.Mass),
		builder.WithFaceLinks(r.Volume.FaceLinks),
	}
	if r.Seed != 0 || r.Randomize {
		opts = append(opts, builder.WithSeed(r.Seed))
	}
	if r.Randomize {
		opts = append(opts, builder.WithRandomizeConstraints())
	}
	if r.Volume.Strict {
		opts = append(opts, builder.WithStrictBoundary())
	}
	if r.Volume.TetraLinks != nil {
		opts = append(opts, builder.WithTetraLinks(*r.Volume.TetraLinks))
	}
	if r.Volume.Workers > 0 {
		opts = append(opts, builder.WithBoundaryWorkers(r.Volume.Workers))
	}

	return opts
}

// constructor returns the builder constructor for the recipe's kind.
func (r *Recipe) constructor() (builder.Constructor, error) {
	switch r.Kind {
	case "patch":
		p := r.Patch
		return builder.Patch(vec(p.Corners[0]), vec(p.Corners[1]), vec(p.Corners[2]), vec(p.Corners[3]),
			p.RX, p.RY, p.Fixed, p.Diagonals), nil
	case "rope":
		return builder.Rope(vec(r.Rope.From), vec(r.Rope.To), r.Rope.Resolution, r.Rope.Fixed), nil
	case "trimesh":
		return builder.TriMesh(vecs(r.TriMesh.Vertices), r.TriMesh.Triangles), nil
	case "hull":
		return builder.ConvexHull(vecs(r.Hull.Points)), nil
	case "ellipsoid":
		e := r.Ellipsoid
		return builder.Ellipsoid(vec(e.Center), vec(e.Radius), e.Resolution), nil
	case "tetgen", "vtk", "gmsh":
		t, err := r.readVolume()
		if err != nil {
			return nil, err
		}
		return builder.Volume(t.Positions, t.Tetras), nil
	default:
		return nil, fmt.Errorf("unknown kind %q", r.Kind)
	}
}

func (r *Recipe) readVolume() (*meshio.VolumeTables, error) {
	switch r.Kind {
	case "gmsh":
		return meshio.ReadMeshFile(r.File.Path)
	case "vtk":
		f, err := os.Open(r.File.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return meshio.ReadVTK(f)
	default:
		ele := r.File.Ele
		if ele == "" {
			ele = strings.TrimSuffix(r.File.Path, filepath.Ext(r.File.Path)) + ".ele"
		}
		nf, err := os.Open(r.File.Path)
		if err != nil {
			return nil, err
		}
		defer nf.Close()
		ef, err := os.Open(ele)
		if err != nil {
			return nil, err
		}
		defer ef.Close()
		return meshio.ReadTetGen(nf, ef)
	}
}

func vec(c []float64) r3.Vec { return r3.Vec{X: c[0], Y: c[1], Z: c[2]} }

func vecs(cs [][]float64) []r3.Vec {
	out := make([]r3.Vec, len(cs))
	for i, c := range cs {
		out[i] = vec(c)
	}
	return out
}
