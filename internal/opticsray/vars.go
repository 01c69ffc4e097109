package opticsray

var (
	Debug = false // set to true to collect and print ray statistics
	RAW   = false // set to true to dump linear float pixels next to the image
	// ForceWorkers > 0 overrides the worker count from the scene config
	ForceWorkers = 0
	// Compile time checks to ensure every scene surface implements ColoredObject
	_ ColoredObject = (*ColoredCircle)(nil)
	_ ColoredObject = (*ColoredRectangle)(nil)
	_ ColoredObject = (*InsertedImage)(nil)
	_ Camera        = (*SimpleCamera)(nil)
	_ Camera        = (*EyeCamera)(nil)
	_ Exporter      = (*ObjExporter)(nil)
)
