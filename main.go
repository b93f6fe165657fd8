package main

import (
	"encoding/json"
	"fmt"

	"github.com/docopt/docopt-go"
	log "github.com/sirupsen/logrus"
	"github.com/stm32tools/usbreport/pnp"
	"github.com/stm32tools/usbreport/serialport"
)

// JSONdisabled enables or disables output in JSON format
var JSONdisabled = false

func main() {
	Main()
}

const version = "local-build"

// Main Exports main for testing
func Main() {
	usage := fmt.Sprintf(`usbreport %s

Usage:
  usbreport report [options] [--output=<outfile>]
  usbreport list [options]
  usbreport ports [options] [--all]
  usbreport -h | --help
  usbreport --version | version [options]

Options:
  -v --verbose   Enable Debug Logging.
  -t --trace     Enable Trace Logging (dump every message).
  --nojson       Disable JSON output (default).
  -h --help      Show this screen.

The commands work as following:
	The default output of all commands is JSON. Should you prefer human readable output, specify the --nojson option with your command.
	Specify -v for debug logging and -t for dumping every message.

   usbreport report [options] [--output=<outfile>]   Writes a JSON report of all attached STM32 devices (VID 0483, PID 52A4) to USB_Device_Info.json or <outfile> and dumps it to the console.
   usbreport list [options]                          Prints the device IDs of all attached STM32 devices.
   usbreport ports [options] [--all]                 Prints a detailed list of the STM32 serial ports. --all prints every serial port of the host.
   usbreport -h | --help                             Prints this screen.
   usbreport --version | version [options]           Prints the version

  `, version)
	arguments, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatal(err)
	}
	disableJSON, _ := arguments.Bool("--nojson")
	if disableJSON {
		JSONdisabled = true
	} else {
		log.SetFormatter(&log.JSONFormatter{})
	}

	traceLevelEnabled, _ := arguments.Bool("--trace")
	if traceLevelEnabled {
		log.Info("Set Trace mode")
		log.SetLevel(log.TraceLevel)
	} else {
		verboseLoggingEnabledLong, _ := arguments.Bool("--verbose")

		if verboseLoggingEnabledLong {
			log.Info("Set Debug mode")
			log.SetLevel(log.DebugLevel)
		}
	}
	log.Debug(arguments)

	shouldPrintVersionNoDashes, _ := arguments.Bool("version")
	shouldPrintVersion, _ := arguments.Bool("--version")
	if shouldPrintVersionNoDashes || shouldPrintVersion {
		printVersion()
		return
	}

	b, _ := arguments.Bool("report")
	if b {
		outputPath, _ := arguments.String("--output")
		if outputPath == "" {
			outputPath = pnp.DefaultReportPath
		}
		collectAndReport(outputPath)
		return
	}

	b, _ = arguments.Bool("list")
	if b {
		printDeviceList()
		return
	}

	b, _ = arguments.Bool("ports")
	if b {
		all, _ := arguments.Bool("--all")
		printPorts(all)
		return
	}
}

// collectAndReport takes one snapshot of the matching devices, overwrites
// outputPath with the JSON report and dumps it to the console. The file is
// written before anything is printed, so a write failure aborts the run
// without a console dump.
func collectAndReport(outputPath string) {
	deviceList, err := pnp.Collect(pnp.NewQuerier())
	if err != nil {
		failWithError("failed querying devices", err)
	}
	jsonText, err := pnp.WriteReport(deviceList, outputPath)
	if err != nil {
		failWithError("failed writing report", err)
	}
	fmt.Printf("Device information saved to %s\n", outputPath)
	fmt.Printf("Found %d matching device instance(s)\n", len(deviceList.Records))
	fmt.Println("Device details:")
	fmt.Println(string(jsonText))
}

func printDeviceList() {
	deviceList, err := pnp.Collect(pnp.NewQuerier())
	if err != nil {
		failWithError("failed getting device list", err)
	}
	if JSONdisabled {
		fmt.Print(deviceList.String())
	} else {
		fmt.Println(convertToJSONString(deviceList.CreateMapForJSONConverter()))
	}
}

func printPorts(all bool) {
	ports, err := serialport.List()
	if err != nil {
		failWithError("failed listing serial ports", err)
	}
	if !all {
		ports = serialport.FilterSTM32(ports)
	}
	if JSONdisabled {
		for _, port := range ports {
			fmt.Println(port.String())
		}
	} else {
		fmt.Println(convertToJSONString(map[string]interface{}{"portList": ports}))
	}
}

func printVersion() {
	versionMap := map[string]interface{}{
		"version": version,
	}
	if JSONdisabled {
		fmt.Println(version)
	} else {
		fmt.Println(convertToJSONString(versionMap))
	}
}

func convertToJSONString(data interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		fmt.Println(err)
		return ""
	}
	return string(b)
}

func failWithError(msg string, err error) {
	log.WithFields(log.Fields{"err": err}).Fatalf(msg)
}
