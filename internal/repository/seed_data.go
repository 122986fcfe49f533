package repository

type seedGuide struct {
	partNumber    string
	instructions  string
	difficulty    string
	estimatedTime string
	toolsRequired string
	videoURL      string
}

type seedTroubleshooting struct {
	productType  string
	issue        string
	solution     string
	relatedParts string
}

var seedProducts = []struct {
	modelNumber, name, productType, brand, description string
}{
	{"WDT780SAEM1", "Whirlpool Dishwasher", "Dishwasher", "Whirlpool", "Top control dishwasher with stainless steel interior"},
	{"WRF535SWHZ", "Whirlpool Refrigerator", "Refrigerator", "Whirlpool", "French door refrigerator with ice maker"},
	{"GDT695SSJSS", "GE Dishwasher", "Dishwasher", "GE", "Built-in dishwasher with bottle wash jets"},
	{"GFE28GYNFS", "GE Refrigerator", "Refrigerator", "GE", "French door refrigerator with Keurig K-Cup"},
	{"LFXS26973S", "LG Refrigerator", "Refrigerator", "LG", "Smart French door refrigerator with InstaView"},
}

var seedParts = []struct {
	partNumber, name, description, category string
	price                                   float64
	inStock                                 bool
	imageURL                                string
}{
	{"PS11752778", "Ice Maker Assembly", "Complete ice maker assembly for refrigerators", "Ice Maker", 129.99, true, "/assets/parts/ice-maker.jpg"},
	{"PS11755825", "Water Inlet Valve", "Water inlet valve for ice maker and water dispenser", "Water System", 45.99, true, "/assets/parts/water-valve.jpg"},
	{"PS11754026", "Dishwasher Spray Arm", "Lower spray arm assembly", "Spray Arm", 32.50, true, "/assets/parts/spray-arm.jpg"},
	{"PS11768671", "Dishwasher Pump", "Drain pump assembly", "Pump", 89.99, true, "/assets/parts/pump.jpg"},
	{"PS11742119", "Door Gasket", "Refrigerator door gasket seal", "Seal", 67.50, true, "/assets/parts/gasket.jpg"},
	{"PS11749009", "Temperature Control Thermostat", "Temperature control for refrigerator", "Thermostat", 54.99, true, "/assets/parts/thermostat.jpg"},
	{"PS11755626", "Dishwasher Detergent Dispenser", "Detergent dispenser assembly", "Dispenser", 78.00, true, "/assets/parts/dispenser.jpg"},
	{"PS11738175", "Evaporator Fan Motor", "Fan motor for refrigerator evaporator", "Motor", 95.00, true, "/assets/parts/fan-motor.jpg"},
}

var (
	seedRefrigerators = []string{"WRF535SWHZ", "GFE28GYNFS", "LFXS26973S"}
	seedDishwashers   = []string{"WDT780SAEM1", "GDT695SSJSS"}
)

// part numbers mapped onto the models they fit
var seedCompatibility = []struct {
	parts  []string
	models []string
}{
	{[]string{"PS11752778", "PS11755825"}, seedRefrigerators},
	{[]string{"PS11754026", "PS11768671", "PS11755626"}, seedDishwashers},
	{[]string{"PS11742119", "PS11749009", "PS11738175"}, seedRefrigerators},
}

var seedInstallationGuides = []seedGuide{
	{
		partNumber: "PS11752778",
		instructions: `Ice Maker Installation Steps:
1. Unplug refrigerator and turn off water supply
2. Remove ice bin from freezer compartment
3. Locate ice maker mounting bracket on left wall of freezer
4. Disconnect electrical harness from old ice maker
5. Remove mounting screws and lift out old ice maker
6. Position new ice maker on mounting bracket
7. Secure with mounting screws (do not overtighten)
8. Connect electrical harness until it clicks
9. Turn on water supply and check for leaks
10. Plug in refrigerator and wait 24 hours for first ice batch

Important: Ensure water line is properly connected and has adequate pressure (20-120 psi).`,
		difficulty:    "Moderate",
		estimatedTime: "30-45 minutes",
		toolsRequired: "Phillips screwdriver, adjustable wrench, towels",
		videoURL:      "https://youtube.com/install-ice-maker",
	},
	{
		partNumber: "PS11755825",
		instructions: `Water Inlet Valve Installation Steps:
1. Unplug refrigerator and turn off water supply
2. Pull refrigerator away from wall for access to back panel
3. Disconnect water line from inlet valve
4. Disconnect electrical connections
5. Remove mounting screws and remove old valve
6. Install new valve in mounting position
7. Secure with mounting screws
8. Reconnect electrical connections
9. Reconnect water line (ensure proper connection)
10. Turn on water supply and check for leaks
11. Plug in refrigerator`,
		difficulty:    "Easy to Moderate",
		estimatedTime: "20-30 minutes",
		toolsRequired: "Phillips screwdriver, adjustable wrench, bucket",
		videoURL:      "https://youtube.com/install-water-valve",
	},
	{
		partNumber: "PS11754026",
		instructions: `Dishwasher Spray Arm Installation Steps:
1. Turn off power to dishwasher
2. Remove lower dish rack
3. Unscrew spray arm retaining nut (turn counterclockwise)
4. Lift out old spray arm
5. Inspect spray arm support for debris and clean if needed
6. Position new spray arm over support
7. Install retaining nut and tighten (hand-tight only)
8. Rotate spray arm to ensure free movement
9. Replace lower dish rack
10. Restore power and run test cycle`,
		difficulty:    "Easy",
		estimatedTime: "10-15 minutes",
		toolsRequired: "None (hand tools only)",
		videoURL:      "https://youtube.com/install-spray-arm",
	},
}

var seedTroubleshootingGuides = []seedTroubleshooting{
	{
		productType: "Refrigerator",
		issue:       "Ice maker not working",
		solution: `Common causes and solutions:
1. Water Supply Issues:
   - Check water supply valve is fully open
   - Verify water line is not frozen (check temperature)
   - Ensure water pressure is 20-120 psi

2. Ice Maker Switch:
   - Verify ice maker is turned ON (arm is down)
   - Check control panel settings

3. Temperature Issues:
   - Freezer should be 0-5°F (-18 to -15°C)
   - If too warm, ice won't form properly

4. Water Filter:
   - Replace if older than 6 months
   - Clogged filter reduces water flow

5. Mechanical Issues:
   - Ice maker assembly may need replacement (Part PS11752778)
   - Water inlet valve may be faulty (Part PS11755825)

If issue persists after checking these items, replacement of ice maker assembly is recommended.`,
		relatedParts: "PS11752778, PS11755825",
	},
	{
		productType: "Dishwasher",
		issue:       "Poor cleaning performance",
		solution: `Troubleshooting steps:
1. Spray Arm Issues:
   - Check spray arms spin freely
   - Clean spray arm holes (use toothpick if clogged)
   - Replace if damaged (Part PS11754026)

2. Water Supply:
   - Ensure hot water reaches dishwasher (120°F/49°C)
   - Check water inlet valve for blockage

3. Detergent Dispenser:
   - Verify dispenser opens during cycle
   - Use fresh detergent (powder can cake if old)
   - Consider replacing dispenser (Part PS11755626)

4. Filter Maintenance:
   - Clean dishwasher filter monthly
   - Remove debris from bottom of tub

5. Loading:
   - Don't overload - water must reach all surfaces
   - Ensure dishes don't block spray arms

6. Pump Issues:
   - If water doesn't drain, pump may be faulty (Part PS11768671)`,
		relatedParts: "PS11754026, PS11755626, PS11768671",
	},
	{
		productType: "Refrigerator",
		issue:       "Not cooling properly",
		solution: `Diagnostic steps:
1. Basic Checks:
   - Ensure refrigerator is plugged in
   - Check temperature settings (37°F/3°C for fridge, 0°F/-18°C for freezer)
   - Verify door seals are intact (replace if damaged - Part PS11742119)

2. Airflow:
   - Don't overfill - blocks air circulation
   - Ensure vents inside are not blocked
   - Clean condenser coils (back or bottom)

3. Evaporator Fan:
   - Listen for fan running in freezer
   - If silent, fan motor may need replacement (Part PS11738175)

4. Temperature Control:
   - Test thermostat functionality
   - Replace if defective (Part PS11749009)

5. Door Issues:
   - Check that doors close completely
   - Replace gasket if air leaks detected

If refrigerator is completely dead, check circuit breaker and outlet first.`,
		relatedParts: "PS11742119, PS11738175, PS11749009",
	},
	{
		productType: "Dishwasher",
		issue:       "Not draining",
		solution: `Drain troubleshooting:
1. Check Drain Hose:
   - Ensure hose is not kinked
   - Verify proper installation height
   - Check for blockages

2. Filter and Sump:
   - Remove and clean filter
   - Check sump area for debris
   - Remove any obstructions

3. Drain Pump:
   - Listen for pump operation during drain cycle
   - If silent or humming, pump may be faulty (Part PS11768671)
   - Check pump impeller for obstructions

4. Garbage Disposal:
   - If newly installed, knockout plug must be removed
   - Check disposal for clogs

5. Air Gap:
   - If installed, clean air gap of debris

Replace drain pump if mechanical failure is confirmed.`,
		relatedParts: "PS11768671",
	},
}
