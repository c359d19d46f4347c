package proj4_coordinate_converter

import "fmt"

var epsgDefinitions = map[int]string{
	4326: "+proj=longlat +datum=WGS84 +no_defs",
	4978: "+proj=geocent +datum=WGS84 +units=m +no_defs",
	3395: "+proj=merc +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
	3857: "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +wktext +no_defs",
}

// Proj4 definition of an EPSG code. WGS84 UTM zones (326xx north, 327xx south) are generated.
func epsgDefinition(srid int) (string, bool) {
	if def, ok := epsgDefinitions[srid]; ok {
		return def, true
	}
	switch {
	case srid > 32600 && srid <= 32660:
		return fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", srid-32600), true
	case srid > 32700 && srid <= 32760:
		return fmt.Sprintf("+proj=utm +zone=%d +south +datum=WGS84 +units=m +no_defs", srid-32700), true
	}
	return "", false
}
