// Package iiifpres provides flat re-exports of the canvas painting packages
package iiifpres

import (
	"github.com/filegrind/iiifpres-go/canvas"
	"github.com/filegrind/iiifpres-go/content"
	"github.com/filegrind/iiifpres-go/fragment"
	"github.com/filegrind/iiifpres-go/id"
	"github.com/filegrind/iiifpres-go/standard"
)

// Content types and functions
type Kind = content.Kind
type Resource = content.Resource
type ResourceType = content.Type

const (
	KindNone           = content.KindNone
	KindSpatial        = content.KindSpatial
	KindTemporal       = content.KindTemporal
	KindSpatioTemporal = content.KindSpatioTemporal
)

var NewResource = content.NewResource
var NewImage = content.NewImage
var NewSound = content.NewSound
var NewVideo = content.NewVideo
var NewText = content.NewText
var NewDataset = content.NewDataset
var NewModel = content.NewModel

// Fragment types and functions
type Selector = fragment.Selector

var ParseFragment = fragment.Parse
var NewSpatialSelector = fragment.NewSpatial
var NewTemporalSelector = fragment.NewTemporal
var NewSpatioTemporalSelector = fragment.NewSpatioTemporal

// Canvas types and functions
type Canvas = canvas.Canvas
type Annotation = canvas.Annotation
type AnnotationPage = canvas.AnnotationPage
type Body = canvas.Body
type Target = canvas.Target
type Painter = canvas.Painter
type Minter = canvas.Minter
type SelectorOutOfBoundsError = canvas.SelectorOutOfBoundsError
type ContentOutOfBoundsError = canvas.ContentOutOfBoundsError
type ArgumentError = canvas.ArgumentError

var NewCanvas = canvas.NewCanvas
var NewPainter = canvas.NewPainter
var ExtentKind = canvas.ExtentKind
var Validate = canvas.Validate
var PackBody = canvas.PackBody

// Minters
var NewDefaultMinter = id.NewDefaultMinter
var NewUUIDMinter = id.NewUUIDMinter
var WithMinterSeed = id.WithSeed
var WithExistingIDs = id.WithExisting

// ErrMalformedInput is matched by every malformed-input error
var ErrMalformedInput = standard.ErrMalformedInput
