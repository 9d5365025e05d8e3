package spdx

import "strings"

// This file holds the built-in recognition tables for SPDX license and
// exception identifiers. The tables are read-only process-wide state:
// constructed once at package load, shared by every parser, never mutated.

// knownLicenses is the built-in set of recognized license identifiers in
// their canonical casing. It covers the identifiers that show up in practice
// in scanner output; anything else can be supplied through a custom visitor
// or as a LicenseRef token.
var knownLicenses = []string{
	"0BSD",
	"AFL-1.1",
	"AFL-1.2",
	"AFL-2.0",
	"AFL-2.1",
	"AFL-3.0",
	"AGPL-1.0-only",
	"AGPL-1.0-or-later",
	"AGPL-3.0-only",
	"AGPL-3.0-or-later",
	"AGPL-3.0",
	"Apache-1.0",
	"Apache-1.1",
	"Apache-2.0",
	"APSL-1.0",
	"APSL-1.1",
	"APSL-1.2",
	"APSL-2.0",
	"Artistic-1.0",
	"Artistic-1.0-Perl",
	"Artistic-2.0",
	"BlueOak-1.0.0",
	"BSD-1-Clause",
	"BSD-2-Clause",
	"BSD-2-Clause-FreeBSD",
	"BSD-2-Clause-NetBSD",
	"BSD-2-Clause-Patent",
	"BSD-3-Clause",
	"BSD-3-Clause-Attribution",
	"BSD-3-Clause-Clear",
	"BSD-3-Clause-LBNL",
	"BSD-3-Clause-Modification",
	"BSD-4-Clause",
	"BSD-4-Clause-UC",
	"BSD-Source-Code",
	"BSL-1.0",
	"CC-BY-1.0",
	"CC-BY-2.0",
	"CC-BY-2.5",
	"CC-BY-3.0",
	"CC-BY-4.0",
	"CC-BY-NC-1.0",
	"CC-BY-NC-2.0",
	"CC-BY-NC-2.5",
	"CC-BY-NC-3.0",
	"CC-BY-NC-4.0",
	"CC-BY-NC-ND-3.0",
	"CC-BY-NC-ND-4.0",
	"CC-BY-NC-SA-2.0",
	"CC-BY-NC-SA-3.0",
	"CC-BY-NC-SA-4.0",
	"CC-BY-ND-2.0",
	"CC-BY-ND-3.0",
	"CC-BY-ND-4.0",
	"CC-BY-SA-1.0",
	"CC-BY-SA-2.0",
	"CC-BY-SA-2.5",
	"CC-BY-SA-3.0",
	"CC-BY-SA-4.0",
	"CC-PDDC",
	"CC0-1.0",
	"CDDL-1.0",
	"CDDL-1.1",
	"CECILL-2.0",
	"CECILL-2.1",
	"CECILL-B",
	"CECILL-C",
	"ClArtistic",
	"CPL-1.0",
	"curl",
	"ECL-1.0",
	"ECL-2.0",
	"EFL-1.0",
	"EFL-2.0",
	"EPL-1.0",
	"EPL-2.0",
	"EUPL-1.0",
	"EUPL-1.1",
	"EUPL-1.2",
	"FSFAP",
	"FSFUL",
	"FSFULLR",
	"FTL",
	"GFDL-1.1-only",
	"GFDL-1.1-or-later",
	"GFDL-1.2-only",
	"GFDL-1.2-or-later",
	"GFDL-1.3-only",
	"GFDL-1.3-or-later",
	"GPL-1.0-only",
	"GPL-1.0-or-later",
	"GPL-1.0",
	"GPL-2.0-only",
	"GPL-2.0-or-later",
	"GPL-2.0",
	"GPL-3.0-only",
	"GPL-3.0-or-later",
	"GPL-3.0",
	"HPND",
	"HPND-sell-variant",
	"ICU",
	"IJG",
	"ImageMagick",
	"Intel",
	"IPA",
	"IPL-1.0",
	"ISC",
	"JSON",
	"LGPL-2.0-only",
	"LGPL-2.0-or-later",
	"LGPL-2.0",
	"LGPL-2.1-only",
	"LGPL-2.1-or-later",
	"LGPL-2.1",
	"LGPL-3.0-only",
	"LGPL-3.0-or-later",
	"LGPL-3.0",
	"Libpng",
	"libpng-2.0",
	"libtiff",
	"LPL-1.0",
	"LPL-1.02",
	"MIT",
	"MIT-0",
	"MIT-advertising",
	"MIT-CMU",
	"MIT-enna",
	"MIT-feh",
	"MITNFA",
	"MPL-1.0",
	"MPL-1.1",
	"MPL-2.0",
	"MPL-2.0-no-copyleft-exception",
	"MS-PL",
	"MS-RL",
	"NAIST-2003",
	"NCSA",
	"NIST-PD",
	"NLPL",
	"NTP",
	"ODbL-1.0",
	"ODC-By-1.0",
	"OFL-1.0",
	"OFL-1.1",
	"OLDAP-2.8",
	"OpenSSL",
	"OSL-1.0",
	"OSL-1.1",
	"OSL-2.0",
	"OSL-2.1",
	"OSL-3.0",
	"PHP-3.0",
	"PHP-3.01",
	"PostgreSQL",
	"PSF-2.0",
	"Python-2.0",
	"Qhull",
	"Ruby",
	"SAX-PD",
	"SGI-B-2.0",
	"SISSL",
	"Sleepycat",
	"SMLNJ",
	"SPL-1.0",
	"SSPL-1.0",
	"SunPro",
	"TCL",
	"Unicode-DFS-2015",
	"Unicode-DFS-2016",
	"Unicode-TOU",
	"Unlicense",
	"UPL-1.0",
	"Vim",
	"W3C",
	"W3C-19980720",
	"W3C-20150513",
	"WTFPL",
	"X11",
	"Xerox",
	"XFree86-1.1",
	"Zend-2.0",
	"Zlib",
	"zlib-acknowledgement",
	"ZPL-1.1",
	"ZPL-2.0",
	"ZPL-2.1",
}

// knownExceptions is the built-in set of recognized exception identifiers
// usable after WITH, in canonical casing.
var knownExceptions = []string{
	"389-exception",
	"Autoconf-exception-2.0",
	"Autoconf-exception-3.0",
	"Bison-exception-2.2",
	"Bootloader-exception",
	"Classpath-exception-2.0",
	"CLISP-exception-2.0",
	"eCos-exception-2.0",
	"FLTK-exception",
	"Font-exception-2.0",
	"GCC-exception-2.0",
	"GCC-exception-3.1",
	"gnu-javamail-exception",
	"LGPL-3.0-linking-exception",
	"Libtool-exception",
	"Linux-syscall-note",
	"LLVM-exception",
	"LZMA-exception",
	"Mif-exception",
	"OCaml-LGPL-linking-exception",
	"OCCT-exception-1.0",
	"OpenJDK-assembly-exception-1.0",
	"openvpn-openssl-exception",
	"Qt-GPL-exception-1.0",
	"Qt-LGPL-exception-1.1",
	"u-boot-exception-2.0",
	"Universal-FOSS-exception-1.0",
	"WxWindows-exception-3.1",
}

// licenseRefPrefix marks caller-defined license references, which pass
// through lookup unchanged rather than being matched against the table.
const licenseRefPrefix = "LicenseRef-"

var (
	licenseIndex   = buildIndex(knownLicenses)
	exceptionIndex = buildIndex(knownExceptions)
)

// buildIndex maps the lowercase form of each identifier to its canonical
// casing, for case-insensitive lookup.
func buildIndex(ids []string) map[string]string {
	index := make(map[string]string, len(ids))
	for _, id := range ids {
		index[strings.ToLower(id)] = id
	}
	return index
}

// LookupLicense resolves an identifier token case-insensitively against the
// canonical license table. LicenseRef- tokens pass through as-is. Returns ""
// when the token is unrecognized.
func LookupLicense(id string) string {
	if strings.HasPrefix(strings.ToLower(id), strings.ToLower(licenseRefPrefix)) {
		return id
	}
	return licenseIndex[strings.ToLower(id)]
}

// LookupException resolves an exception identifier token case-insensitively
// against the canonical exception table. Returns "" when unrecognized.
func LookupException(id string) string {
	return exceptionIndex[strings.ToLower(id)]
}
