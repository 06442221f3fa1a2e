package standard

// Resource type names as they appear in the JSON "type" property.
const (
	TypeCanvas           = "Canvas"
	TypeAnnotation       = "Annotation"
	TypeAnnotationPage   = "AnnotationPage"
	TypeSpecificResource = "SpecificResource"
	TypeFragmentSelector = "FragmentSelector"
	TypeChoice           = "Choice"

	TypeImage   = "Image"
	TypeSound   = "Sound"
	TypeVideo   = "Video"
	TypeText    = "Text"
	TypeDataset = "Dataset"
	TypeModel   = "Model"
)

// Annotation motivations
const (
	MotivationPainting      = "painting"
	MotivationSupplementing = "supplementing"
)

// Time modes an annotation may declare for temporal content
const (
	TimeModeTrim  = "trim"
	TimeModeScale = "scale"
	TimeModeLoop  = "loop"
)

// RdfNil stands in for an absent alternative inside a Choice body
const RdfNil = "rdf:nil"

// MediaFragmentsURI is the conformsTo value of a media fragment selector
const MediaFragmentsURI = "http://www.w3.org/TR/media-frags/"

// JSON keys
const (
	KeyID          = "id"
	KeyType        = "type"
	KeyLabel       = "label"
	KeyFormat      = "format"
	KeyWidth       = "width"
	KeyHeight      = "height"
	KeyDuration    = "duration"
	KeyItems       = "items"
	KeyAnnotations = "annotations"
	KeyMotivation  = "motivation"
	KeyTimeMode    = "timeMode"
	KeyBody        = "body"
	KeyTarget      = "target"
	KeySource      = "source"
	KeySelector    = "selector"
	KeyConformsTo  = "conformsTo"
	KeyValue       = "value"
)
