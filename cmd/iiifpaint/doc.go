// Command iiifpaint builds IIIF canvases from paint plans and inspects the
// result.
//
//	iiifpaint paint plan.toml --out canvas.json --validate
//	iiifpaint inspect canvas.json
//	iiifpaint fragment "t=10,20&xywh=0,0,480,360"
package main
