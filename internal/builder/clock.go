package builder

import "time"

// nowFn is the clock tip-recipient rotation reads, held in a package variable.
var nowFn = time.Now
