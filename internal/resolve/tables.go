// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

// journalReplacements maps journal abbreviations as reported by
// publishers to the CASSI forms. Publisher abbreviations frequently
// disagree with the canonical style guide.
var journalReplacements = map[string]string{
	"Proceedings of the National Academy of Sciences":      "Proc. Natl. Acad. Sci. U. S. A.",
	"The Journal of Chemical Physics":                      "J. Chem. Phys.",
	"Journal of Magnetic Resonance":                        "J. Magn. Reson.",
	"Journal of Magnetic Resonance (1969)":                 "J. Magn. Reson.",
	"Progress in Nuclear Magnetic Resonance Spectroscopy":  "Prog. Nucl. Magn. Reson. Spectrosc.",
	"Magn Reson Chem":                                      "Magn. Reson. Chem.",
	"Chemical Physics Letters":                             "Chem. Phys. Lett.",
	"Biochemistry Journal":                                 "Biochem. J.",
	"Journal of Magnetic Resonance, Series A":              "J. Magn. Reson., Ser. A",
	"Journal of Magnetic Resonance, Series B":              "J. Magn. Reson., Ser. B",
	"J Biomol NMR":                                         "J. Biomol. NMR",
	"Annual Reports on NMR Spectroscopy":                   "Annu. Rep. NMR Spectrosc.",
	"Angewandte Chemie International Edition":              "Angew. Chem. Int. Ed.",
}

// greekUnicode maps spelled-out Greek letter names to their glyphs.
var greekUnicode = map[string]string{
	"Alpha": "Α", "Beta": "Β", "Gamma": "Γ", "Delta": "Δ",
	"Epsilon": "Ε", "Zeta": "Ζ", "Eta": "Η", "Theta": "Θ",
	"Iota": "Ι", "Kappa": "Κ", "Lamda": "Λ", "Mu": "Μ",
	"Nu": "Ν", "Xi": "Ξ", "Omicron": "Ο", "Pi": "Π",
	"Rho": "Ρ", "Sigma": "Σ", "Tau": "Τ", "Upsilon": "Υ",
	"Phi": "Φ", "Chi": "Χ", "Psi": "Ψ", "Omega": "Ω",
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ",
	"iota": "ι", "kappa": "κ", "lamda": "λ", "mu": "μ",
	"nu": "ν", "xi": "ξ", "omicron": "ο", "pi": "π",
	"rho": "ρ", "sigma": "σ", "tau": "τ", "upsilon": "υ",
	"phi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
}
